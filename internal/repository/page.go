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

package repository

// Pageable requests one page of a result set. A nil *Pageable means unpaged.
type Pageable struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Offset returns the index of the first element of the page
func (p *Pageable) Offset() int {
	if p == nil || p.PageNumber < 0 || p.PageSize <= 0 {
		return 0
	}
	return p.PageNumber * p.PageSize
}

// IsEmpty reports whether the page can never hold content
func (p *Pageable) IsEmpty() bool {
	return p != nil && (p.PageSize <= 0 || p.PageNumber < 0)
}

// bounds returns the [start, end) slice boundaries of the page over total elements
func (p *Pageable) bounds(total int) (int, int) {
	if p == nil {
		return 0, total
	}
	if p.IsEmpty() {
		return 0, 0
	}
	start := p.PageNumber * p.PageSize
	if start >= total {
		return 0, 0
	}
	return start, min(start+p.PageSize, total)
}

// Page is one slice of a larger result set plus the total count across all slices
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageElements  int   `json:"pageElements"`
	TotalElements int64 `json:"totalElements"`
}

// NewPage slices a full in-memory result set according to pageable
func NewPage[T any](items []T, pageable *Pageable) Page[T] {
	start, end := pageable.bounds(len(items))
	content := make([]T, end-start)
	copy(content, items[start:end])

	pageNumber := 0
	if pageable != nil {
		pageNumber = pageable.PageNumber
	}
	return Page[T]{
		Content:       content,
		PageNumber:    pageNumber,
		PageElements:  len(content),
		TotalElements: int64(len(items)),
	}
}

// PageOf wraps content that was already sliced by the storage engine
func PageOf[T any](content []T, pageable *Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pageNumber := 0
	if pageable != nil {
		pageNumber = pageable.PageNumber
	}
	return Page[T]{
		Content:       content,
		PageNumber:    pageNumber,
		PageElements:  len(content),
		TotalElements: total,
	}
}
