/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wso2/api-platform/management-repository/internal/model"
)

// Fixtures is the content of a seed file. Entities are created in field order.
type Fixtures struct {
	Organizations []*model.Organization `yaml:"organizations"`
	Roles         []*model.Role         `yaml:"roles"`
	Groups        []*model.Group        `yaml:"groups"`
	Users         []*model.User         `yaml:"users"`
	Applications  []*model.Application  `yaml:"applications"`
	Plans         []*model.Plan         `yaml:"plans"`
	Subscriptions []*model.Subscription `yaml:"subscriptions"`
	ApiKeys       []*model.ApiKey       `yaml:"apiKeys"`
	Events        []*model.Event        `yaml:"events"`
	Audits        []*model.Audit        `yaml:"audits"`
	Commands      []*model.Command      `yaml:"commands"`
	Media         []*model.Media        `yaml:"-"`
}

type mediaYAML struct {
	Type     string `yaml:"type"`
	SubType  string `yaml:"subType"`
	FileName string `yaml:"fileName"`
	Hash     string `yaml:"hash"`
	API      string `yaml:"api"`
	// File is read relative to the seed file
	File string `yaml:"file"`
}

type fixturesYAML struct {
	Fixtures `yaml:",inline"`
	Media    []mediaYAML `yaml:"media"`
}

// LoadFile parses a seed file. Media content is read from the files it
// references and hashed when no hash is given.
func LoadFile(path string) (*Fixtures, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("seed file path is empty")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var doc fixturesYAML
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	fixtures := doc.Fixtures
	dir := filepath.Dir(path)
	for i, m := range doc.Media {
		if strings.TrimSpace(m.Type) == "" || strings.TrimSpace(m.File) == "" {
			return nil, fmt.Errorf("media #%d of %s must have a type and a file", i, path)
		}
		file := m.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read media file %s: %w", file, err)
		}
		hash := m.Hash
		if hash == "" {
			sum := sha256.Sum256(data)
			hash = hex.EncodeToString(sum[:])
		}
		name := m.FileName
		if name == "" {
			name = filepath.Base(file)
		}
		fixtures.Media = append(fixtures.Media, &model.Media{
			Type:     m.Type,
			SubType:  m.SubType,
			FileName: name,
			Hash:     hash,
			API:      m.API,
			Data:     data,
		})
	}
	return &fixtures, nil
}
