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

// Package fgsave implements a read-only parser for a factory-building
// game's save file format: the header metadata and the ordered sequence
// of world objects persisted in the save's compressed body.
//
// It does not interpret entity semantics, validate referential integrity
// between objects, decode per-entity property bags beyond the fixed
// prefix described by [Component] and [Entity], or write/round-trip
// saves.
package fgsave

import (
	"fmt"
	"io"
	"time"
)

// epoch is the anchor for SaveFile.SaveDate: save_date is a count of
// 100-nanosecond ticks since this instant.
var epoch = time.Date(1, time.January, 1, 12, 0, 0, 0, time.UTC)

// SaveFile is the fully decoded header metadata and object list of a save.
type SaveFile struct {
	SaveHeader          int32
	SaveVersion         int32
	BuildVersion        int32
	WorldType           string
	WorldProperties     WorldProperties
	SessionName         string
	PlayTime            time.Duration
	SaveDate            time.Time
	SessionVisibility   Visibility
	EditorObjectVersion int32
	ModMetaData         string
	IsModdedSave        bool
	SaveObjects         []SaveObject
}

// Parse reads a save from r and returns its decoded form. r is consumed
// sequentially and exactly: Parse must not be fed a buffering adapter that
// reads ahead of what Parse has asked for, since the raw header and the
// chunked zlib body that follows it share a single byte-accounted stream.
// Any failure aborts the parse; Parse never returns a partially-populated
// SaveFile.
func Parse(r io.Reader) (*SaveFile, error) {
	saveHeader, err := readI32(r)
	if err != nil {
		return nil, err
	}
	saveVersion, err := readI32(r)
	if err != nil {
		return nil, err
	}
	buildVersion, err := readI32(r)
	if err != nil {
		return nil, err
	}
	worldType, err := readString(r)
	if err != nil {
		return nil, err
	}
	worldPropertiesRaw, err := readString(r)
	if err != nil {
		return nil, err
	}
	worldProperties, err := parseWorldProperties(worldPropertiesRaw)
	if err != nil {
		return nil, err
	}
	sessionName, err := readString(r)
	if err != nil {
		return nil, err
	}
	playTimeRaw, err := readI32(r)
	if err != nil {
		return nil, err
	}
	if playTimeRaw < 0 {
		return nil, ErrNegativeDuration
	}
	playTime := time.Duration(playTimeRaw) * time.Second
	saveDateRaw, err := readI64(r)
	if err != nil {
		return nil, err
	}
	saveDate := epoch.Add(time.Duration(saveDateRaw) * 100 * time.Nanosecond)
	sessionVisibility, err := readVisibility(r)
	if err != nil {
		return nil, err
	}
	editorObjectVersion, err := readI32(r)
	if err != nil {
		return nil, err
	}
	modMetaData, err := readString(r)
	if err != nil {
		return nil, err
	}
	isModdedSaveRaw, err := readI32(r)
	if err != nil {
		return nil, err
	}

	save := &SaveFile{
		SaveHeader:          saveHeader,
		SaveVersion:         saveVersion,
		BuildVersion:        buildVersion,
		WorldType:           worldType,
		WorldProperties:     worldProperties,
		SessionName:         sessionName,
		PlayTime:            playTime,
		SaveDate:            saveDate,
		SessionVisibility:   sessionVisibility,
		EditorObjectVersion: editorObjectVersion,
		ModMetaData:         modMetaData,
		IsModdedSave:        isModdedSaveRaw != 0,
	}

	body, err := newChunkedZlibReader(r)
	if err != nil {
		return nil, err
	}

	objectCount, err := readU32(body)
	if err != nil {
		return nil, err
	}

	// objectCount is attacker-controlled (up to 2^32-1); cap the initial
	// reservation instead of trusting it directly, and let append grow the
	// slice incrementally as objects actually materialize.
	const maxReserve = 4096
	reserve := objectCount
	if reserve > maxReserve {
		reserve = maxReserve
	}
	save.SaveObjects = make([]SaveObject, 0, reserve)
	for i := uint32(0); i < objectCount; i++ {
		obj, err := readObject(body)
		if err != nil {
			return nil, fmt.Errorf("fgsave: object %d of %d: %w", i, objectCount, err)
		}
		save.SaveObjects = append(save.SaveObjects, obj)
	}

	return save, nil
}
