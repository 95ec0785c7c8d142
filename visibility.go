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

import "io"

// Visibility is the session's visibility, decoded either from a single
// byte (session_visibility in the save header) or from a textual token
// (the Visibility key in world_properties).
type Visibility byte

const (
	// Private indicates the session is visible to its owner only.
	Private Visibility = iota

	// FriendsOnly indicates the session is visible to friends.
	FriendsOnly

	// Invalid indicates an explicitly invalid/unset visibility.
	Invalid
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "Private"
	case FriendsOnly:
		return "FriendsOnly"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// The token constants are the textual forms used in world_properties.
const (
	tokenPrivate     = "SV_Private"
	tokenFriendsOnly = "SV_FriendsOnly"
	tokenInvalid     = "SV_Invalid"
)

// parseVisibilityByte decodes the binary session_visibility field.
func parseVisibilityByte(b byte) (Visibility, error) {
	switch b {
	case 0:
		return Private, nil
	case 1:
		return FriendsOnly, nil
	case 2:
		return Invalid, nil
	default:
		return 0, ErrUnknownVisibility
	}
}

// parseVisibilityToken decodes the textual Visibility world-property value.
func parseVisibilityToken(s string) (Visibility, error) {
	switch s {
	case tokenPrivate:
		return Private, nil
	case tokenFriendsOnly:
		return FriendsOnly, nil
	case tokenInvalid:
		return Invalid, nil
	default:
		return 0, ErrUnknownVisibility
	}
}

// readVisibility reads a single byte from r and decodes it per §4.4.
func readVisibility(r io.Reader) (Visibility, error) {
	b, err := readU8(r)
	if err != nil {
		return 0, err
	}
	return parseVisibilityByte(b)
}
