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
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
)

// RoleRepo implements repository.RoleRepository
type RoleRepo struct {
	*store[model.Role]
}

// NewRoleRepo creates a new role repository on coll
func NewRoleRepo(coll *mongo.Collection, logger *zap.Logger) *RoleRepo {
	return &RoleRepo{store: newStore(coll, logger, "role",
		func(r *model.Role) string { return r.ID },
		func(r *model.Role) { emptyIfNil(&r.Permissions) })}
}

var roleSort = sortBy("scope", "name", "_id")

func roleReference(referenceID string, referenceType model.RoleReferenceType) *filter {
	return (&filter{}).eq("referenceId", referenceID).eq("referenceType", string(referenceType))
}

// FindAll returns every role
func (r *RoleRepo) FindAll(ctx context.Context) (_ []*model.Role, err error) {
	defer r.observe("find_all", time.Now(), &err)
	r.logger.Debug("Finding all roles")

	return r.find(ctx, "find_all", (&filter{}).doc(), options.Find().SetSort(roleSort))
}

// FindAllByReference returns the roles defined for a reference
func (r *RoleRepo) FindAllByReference(ctx context.Context, referenceID string, referenceType model.RoleReferenceType) (_ []*model.Role, err error) {
	defer r.observe("find_all_by_reference", time.Now(), &err)
	r.logger.Debug("Finding roles by reference",
		zap.String("reference_id", referenceID), zap.String("reference_type", string(referenceType)))

	f := roleReference(referenceID, referenceType)
	return r.find(ctx, "find_all_by_reference", f.doc(), options.Find().SetSort(roleSort))
}

// FindByScopeAndReference returns the roles of one scope defined for a reference
func (r *RoleRepo) FindByScopeAndReference(ctx context.Context, scope model.RoleScope, referenceID string, referenceType model.RoleReferenceType) (_ []*model.Role, err error) {
	defer r.observe("find_by_scope_and_reference", time.Now(), &err)
	r.logger.Debug("Finding roles by scope and reference", zap.String("scope", string(scope)),
		zap.String("reference_id", referenceID), zap.String("reference_type", string(referenceType)))

	f := roleReference(referenceID, referenceType).eq("scope", string(scope))
	return r.find(ctx, "find_by_scope_and_reference", f.doc(), options.Find().SetSort(roleSort))
}

// FindByScopeAndNameAndReference returns the named role of a scope, or nil
func (r *RoleRepo) FindByScopeAndNameAndReference(ctx context.Context, scope model.RoleScope, name, referenceID string, referenceType model.RoleReferenceType) (_ *model.Role, err error) {
	defer r.observe("find_by_scope_and_name_and_reference", time.Now(), &err)
	r.logger.Debug("Finding role by scope, name and reference", zap.String("scope", string(scope)),
		zap.String("name", name), zap.String("reference_id", referenceID))

	f := roleReference(referenceID, referenceType).eq("scope", string(scope)).eq("name", name)
	return r.findOne(ctx, "find_by_scope_and_name_and_reference", f.doc())
}
