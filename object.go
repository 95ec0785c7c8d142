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

// Vector3 is a triple of IEEE-754 32-bit floats.
type Vector3 struct {
	X, Y, Z float32
}

func readVector3(r io.Reader) (Vector3, error) {
	x, err := readF32(r)
	if err != nil {
		return Vector3{}, err
	}
	y, err := readF32(r)
	if err != nil {
		return Vector3{}, err
	}
	z, err := readF32(r)
	if err != nil {
		return Vector3{}, err
	}
	return Vector3{X: x, Y: y, Z: z}, nil
}

// Vector4 is a quadruple of IEEE-754 32-bit floats.
type Vector4 struct {
	X, Y, Z, W float32
}

func readVector4(r io.Reader) (Vector4, error) {
	x, err := readF32(r)
	if err != nil {
		return Vector4{}, err
	}
	y, err := readF32(r)
	if err != nil {
		return Vector4{}, err
	}
	z, err := readF32(r)
	if err != nil {
		return Vector4{}, err
	}
	w, err := readF32(r)
	if err != nil {
		return Vector4{}, err
	}
	return Vector4{X: x, Y: y, Z: z, W: w}, nil
}

// SaveObject is the tagged union persisted per-entry in the save's
// compressed body. It is implemented by *Component and *Entity, the
// idiomatic Go equivalent of the wire format's tagged union.
type SaveObject interface {
	isSaveObject()
}

const (
	tagComponent int32 = 0
	tagEntity    int32 = 1
)

// Component is a SaveObject for tag 0.
type Component struct {
	TypePath         string
	RootObject       string
	InstanceName     string
	ParentEntityName string
}

func (*Component) isSaveObject() {}

// Entity is a SaveObject for tag 1.
type Entity struct {
	TypePath         string
	RootObject       string
	InstanceName     string
	NeedTransform    bool
	Rotation         Vector4
	Position         Vector3
	Scale            Vector3
	WasPlacedInLevel bool
}

func (*Entity) isSaveObject() {}

// readObject reads one tagged SaveObject: a 32-bit tag, then one of two
// fixed field sequences.
func readObject(r io.Reader) (SaveObject, error) {
	tag, err := readI32(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagComponent:
		typePath, err := readString(r)
		if err != nil {
			return nil, err
		}
		rootObject, err := readString(r)
		if err != nil {
			return nil, err
		}
		instanceName, err := readString(r)
		if err != nil {
			return nil, err
		}
		parentEntityName, err := readString(r)
		if err != nil {
			return nil, err
		}
		return &Component{
			TypePath:         typePath,
			RootObject:       rootObject,
			InstanceName:     instanceName,
			ParentEntityName: parentEntityName,
		}, nil

	case tagEntity:
		typePath, err := readString(r)
		if err != nil {
			return nil, err
		}
		rootObject, err := readString(r)
		if err != nil {
			return nil, err
		}
		instanceName, err := readString(r)
		if err != nil {
			return nil, err
		}
		needTransformRaw, err := readI32(r)
		if err != nil {
			return nil, err
		}
		rotation, err := readVector4(r)
		if err != nil {
			return nil, err
		}
		position, err := readVector3(r)
		if err != nil {
			return nil, err
		}
		scale, err := readVector3(r)
		if err != nil {
			return nil, err
		}
		wasPlacedRaw, err := readI32(r)
		if err != nil {
			return nil, err
		}
		return &Entity{
			TypePath:         typePath,
			RootObject:       rootObject,
			InstanceName:     instanceName,
			NeedTransform:    needTransformRaw == 1,
			Rotation:         rotation,
			Position:         position,
			Scale:            scale,
			WasPlacedInLevel: wasPlacedRaw == 1,
		}, nil

	default:
		return nil, &UnknownObjectTagError{Tag: tag}
	}
}
