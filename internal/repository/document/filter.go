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

package document

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// filter accumulates the conditions of a query document. Conditions are
// implicitly ANDed by MongoDB.
type filter struct {
	d bson.D
}

func (f *filter) add(key string, value any) *filter {
	f.d = append(f.d, bson.E{Key: key, Value: value})
	return f
}

func (f *filter) eq(key string, value any) *filter {
	return f.add(key, value)
}

func (f *filter) eqIfSet(key, value string) *filter {
	if value == "" {
		return f
	}
	return f.add(key, value)
}

// in matches any of values. An empty list adds nothing.
func (f *filter) in(key string, values []string) *filter {
	if len(values) == 0 {
		return f
	}
	return f.add(key, bson.D{{Key: "$in", Value: values}})
}

// between matches the half-open range [from, to) in epoch milliseconds, 0 meaning unbounded
func (f *filter) between(key string, from, to int64) *filter {
	var cond bson.D
	if from > 0 {
		cond = append(cond, bson.E{Key: "$gte", Value: repository.Millis(from)})
	}
	if to > 0 {
		cond = append(cond, bson.E{Key: "$lt", Value: repository.Millis(to)})
	}
	if len(cond) == 0 {
		return f
	}
	return f.add(key, cond)
}

// properties requires, for every filter key, one of its values under prefix.key
func (f *filter) properties(prefix string, pf repository.PropertyFilter) *filter {
	for _, key := range pf.Keys() {
		f.in(prefix+"."+key, pf[key])
	}
	return f
}

// or adds a $or over the given alternatives
func (f *filter) or(alternatives ...bson.D) *filter {
	arr := make(bson.A, len(alternatives))
	for i, a := range alternatives {
		arr[i] = a
	}
	return f.add("$or", arr)
}

func (f *filter) doc() bson.D {
	if f.d == nil {
		return bson.D{}
	}
	return f.d
}

// containsIgnoreCase matches values containing s, ignoring case
func containsIgnoreCase(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// equalsIgnoreCase matches values equal to s, ignoring case
func equalsIgnoreCase(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

func sortBy(fields ...string) bson.D {
	d := make(bson.D, 0, len(fields))
	for _, field := range fields {
		order := 1
		if field[0] == '-' {
			order = -1
			field = field[1:]
		}
		d = append(d, bson.E{Key: field, Value: order})
	}
	return d
}
