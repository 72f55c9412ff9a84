package checks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/roach88/converge/goal"
)

// HTTPParams configures an HTTP status probe.
type HTTPParams struct {
	// URL is the probe target. Required, must parse.
	URL string

	// ExpectStatus is the status code the default test requires.
	// Zero means 200.
	ExpectStatus int

	// Client overrides the HTTP client; nil means http.DefaultClient.
	// Timeout policy belongs to the caller, layered here.
	Client *http.Client
}

// HTTPState is the observed result of an HTTP probe.
type HTTPState struct {
	Status int `json:"status"`
}

// HTTPSpec builds the goal spec for an HTTP probe. A transport-level failure
// (connection refused, DNS not resolving) is the failure signal: the service
// may simply not be up yet. A URL that does not parse is a defect.
func HTTPSpec(p HTTPParams) goal.Spec[Inputs, HTTPState] {
	expect := p.ExpectStatus
	if expect == 0 {
		expect = http.StatusOK
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	return goal.Spec[Inputs, HTTPState]{
		Read: func(ctx context.Context, _ Inputs) (HTTPState, error) {
			if _, err := url.ParseRequestURI(p.URL); err != nil {
				return HTTPState{}, fmt.Errorf("parse url %q: %w", p.URL, err)
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
			if err != nil {
				return HTTPState{}, fmt.Errorf("build request for %q: %w", p.URL, err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return HTTPState{}, goal.Indeterminatef("probe %s unreachable: %v", p.URL, err)
			}
			resp.Body.Close()
			return HTTPState{Status: resp.StatusCode}, nil
		},
		Test: func(_ Inputs, s HTTPState) bool {
			return s.Status == expect
		},
	}
}

// HTTP builds an HTTP probe goal with the default status test.
func HTTP(p HTTPParams) *goal.Goal[Inputs, HTTPState] {
	return goal.New(HTTPSpec(p))
}
