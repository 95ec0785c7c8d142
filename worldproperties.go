// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fgsave

import "strings"

// WorldProperties is the decoded form of the save header's world_properties
// text field: a "?key=value?key=value" grammar, not a URL query string
// (it is "?"-delimited rather than "&"-delimited and has no percent
// escaping).
type WorldProperties struct {
	StartLoc    string
	SessionName string
	Visibility  Visibility
}

const (
	propStartLoc    = "startloc"
	propSessionName = "sessionName"
	propVisibility  = "Visibility"
)

// parseWorldProperties parses the raw world_properties text into a
// WorldProperties value. Any content before the first "?" is ignored; empty
// "?"-delimited segments are skipped, and every other segment must contain
// an "=", at whose first occurrence it is split into key and value. Unknown
// keys are ignored; the three keys above are required.
func parseWorldProperties(raw string) (WorldProperties, error) {
	segments := strings.Split(raw, "?")
	// segments[0] is whatever preceded the first "?" (or the whole string,
	// if there is no "?" at all); it is discarded either way.
	segments = segments[1:]

	values := make(map[string]string, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			return WorldProperties{}, ErrMalformedProperty
		}
		values[key] = value
	}

	startLoc, ok := values[propStartLoc]
	if !ok {
		return WorldProperties{}, ErrMissingProperty
	}
	sessionName, ok := values[propSessionName]
	if !ok {
		return WorldProperties{}, ErrMissingProperty
	}
	visibilityToken, ok := values[propVisibility]
	if !ok {
		return WorldProperties{}, ErrMissingProperty
	}

	visibility, err := parseVisibilityToken(visibilityToken)
	if err != nil {
		return WorldProperties{}, err
	}

	return WorldProperties{
		StartLoc:    startLoc,
		SessionName: sessionName,
		Visibility:  visibility,
	}, nil
}
