package cmd

import (
	"fmt"

	"github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/strings"
)

type HTTPClientFactory struct {
	impl         http.ClientFactory
	destinations map[http.Destination]string
}

func NewHTTPClientFactory(
	destinations map[http.Destination]string,
	opts ...http.ClientOption,
) HTTPClientFactory {
	return HTTPClientFactory{
		impl:         http.NewClientFactory(opts...),
		destinations: destinations,
	}
}

func (f HTTPClientFactory) MustInitClient(dest http.Destination, extraOpts ...http.ClientOption) http.Client {
	baseURL, ok := f.destinations[dest]
	if !ok || baseURL == "" {
		panic(fmt.Errorf("destination %s is not configured, set %s", dest, DestinationURLEnv(dest)))
	}

	return f.impl.InitClient(dest, baseURL, extraOpts...)
}

func DestinationURLEnv(dest http.Destination) string {
	return fmt.Sprintf("NEURAOPS_%s_URL", strings.ToScreamingSnakeCase(string(dest)))
}
