package vitecfg

import (
	"github.com/evanw/esbuild/pkg/api"
)

// validate checks that src parses as typescript or, failing that, as plain
// javascript. The typescript grammar is a near superset, so almost every
// valid input passes on the first attempt; the javascript retry covers the
// rare constructs typescript rejects. Returns a *ParseError built from the
// first esbuild message when both fail.
func validate(src string) *ParseError {
	tsErrs := transformErrors(src, api.LoaderTS)
	if len(tsErrs) == 0 {
		return nil
	}
	if jsErrs := transformErrors(src, api.LoaderJS); len(jsErrs) == 0 {
		return nil
	}

	msg := tsErrs[0]
	perr := &ParseError{Msg: msg.Text}
	if msg.Location != nil {
		perr.Line = msg.Location.Line
		perr.Col = msg.Location.Column
	}
	return perr
}

func transformErrors(src string, loader api.Loader) []api.Message {
	result := api.Transform(src, api.TransformOptions{
		Loader:   loader,
		LogLevel: api.LogLevelSilent,
	})
	return result.Errors
}
