//go:generate mockgen -source=httpclient.go -destination=mocks/mock_httpclient.go -package=mocks

package closure

import "net/http"

// HTTPClient is the transport used to reach the compilation service. The
// standard *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
