package gemini

import "github.com/go-resty/resty/v2"

// apiKeyHeader is the header the Gemini API reads credentials from.
const apiKeyHeader = "x-goog-api-key"

// authStrategy attaches a credential to an outgoing request.
type authStrategy struct {
	name  string
	apply func(r *resty.Request, apiKey string)
}

// authStrategies are tried in order for every HTTP call. The next strategy
// is only used after a transport failure; HTTP status errors are final.
var authStrategies = []authStrategy{
	{
		name: "header",
		apply: func(r *resty.Request, apiKey string) {
			r.SetHeader(apiKeyHeader, apiKey)
		},
	},
	{
		name: "query",
		apply: func(r *resty.Request, apiKey string) {
			r.SetQueryParam("key", apiKey)
		},
	},
}
