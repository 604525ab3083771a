// Package services holds the client's application services. They sit between
// the REPL and the backend client and own the rules the backend does not
// enforce:
//
//   - ContractService validates contracts before they leave the process and
//     classifies backend failures as RemoteReadError or RemoteWriteError.
//   - AuthService registers, logs in and out, and restores a saved session.
//   - BrandingService loads and saves the agency branding, uploading a new
//     logo first when one is given.
//
// Each service depends on a narrow backend interface declared here, so tests
// can substitute fakes for *directus.Client.
package services
