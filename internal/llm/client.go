/**
* Name: 			client.go
* Description: 		Shared settings for the Google Cloud clients
* Workflow: 		credentials file -> client options
 */

package llm

import (
	"google.golang.org/api/option"
)

const (
	// LanguageCode is used for recognition, synthesis and sentiment alike.
	LanguageCode = "en-US"

	WAVMimeType = "audio/wav"
)

// GoogleOptions carries what every Google Cloud client needs to authenticate.
// An empty CredentialsFile falls back to application default credentials.
type GoogleOptions struct {
	CredentialsFile string
}

func (o GoogleOptions) clientOptions() []option.ClientOption {
	if o.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(o.CredentialsFile)}
}
