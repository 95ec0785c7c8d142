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

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseWorldProperties(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
		want WorldProperties
		err  error
	}{
		{
			name: "spec example",
			raw:  "?startloc=Grass Fields?sessionName=test_file?Visibility=SV_Private",
			want: WorldProperties{
				StartLoc:    "Grass Fields",
				SessionName: "test_file",
				Visibility:  Private,
			},
		},
		{
			name: "empty text",
			raw:  "",
			err:  ErrMissingProperty,
		},
		{
			name: "missing leading question mark is tolerated",
			raw:  "junk?startloc=A?sessionName=B?Visibility=SV_Invalid",
			want: WorldProperties{StartLoc: "A", SessionName: "B", Visibility: Invalid},
		},
		{
			name: "unknown extra keys are ignored",
			raw:  "?startloc=A?sessionName=B?Visibility=SV_FriendsOnly?extra=1?another=2",
			want: WorldProperties{StartLoc: "A", SessionName: "B", Visibility: FriendsOnly},
		},
		{
			name: "segment without equals",
			raw:  "?startloc=A?nonsense?sessionName=B?Visibility=SV_Private",
			err:  ErrMalformedProperty,
		},
		{
			name: "missing required key",
			raw:  "?startloc=A?Visibility=SV_Private",
			err:  ErrMissingProperty,
		},
		{
			name: "unknown visibility token",
			raw:  "?startloc=A?sessionName=B?Visibility=SV_Bogus",
			err:  ErrUnknownVisibility,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseWorldProperties(tc.raw)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("parseWorldProperties(%q) error = %v, want %v", tc.raw, err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWorldProperties(%q) unexpected error: %v", tc.raw, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("parseWorldProperties(%q) mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}
