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

package relational

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
)

var roleMapping = &mapping[model.Role]{
	entity:   "role",
	table:    "roles",
	alias:    "r",
	idColumn: "id",
	id:       func(r *model.Role) string { return r.ID },
	columns: []column[model.Role]{
		col("id", func(r *model.Role) *string { return &r.ID }),
		col("name", func(r *model.Role) *string { return &r.Name }),
		col("description", func(r *model.Role) *string { return &r.Description }),
		enumCol("scope", func(r *model.Role) *model.RoleScope { return &r.Scope }),
		col("reference_id", func(r *model.Role) *string { return &r.ReferenceID }),
		enumCol("reference_type", func(r *model.Role) *model.RoleReferenceType { return &r.ReferenceType }),
		col("default_role", func(r *model.Role) *bool { return &r.DefaultRole }),
		col("system", func(r *model.Role) *bool { return &r.System }),
		timeCol("created_at", func(r *model.Role) *time.Time { return &r.CreatedAt }),
		timeCol("updated_at", func(r *model.Role) *time.Time { return &r.UpdatedAt }),
	},
	children: []child[model.Role]{
		intList("role_permissions", "role_id", "permission", func(r *model.Role) *[]int { return &r.Permissions }),
	},
}

// RoleRepo implements repository.RoleRepository
type RoleRepo struct {
	*crud[model.Role]
}

// NewRoleRepo creates a new role repository
func NewRoleRepo(db sqlx.ExtContext, logger *zap.Logger) *RoleRepo {
	return &RoleRepo{crud: newCrud(db, logger, roleMapping)}
}

func roleOrder() []string {
	return []string{qualified("r", "scope"), qualified("r", "name")}
}

func roleReference(where *clauses, referenceID string, referenceType model.RoleReferenceType) {
	where.AddEqual(qualified("r", "reference_id"), referenceID)
	where.AddEqual(qualified("r", "reference_type"), string(referenceType))
}

// FindAll returns every role
func (r *RoleRepo) FindAll(ctx context.Context) (_ []*model.Role, err error) {
	defer r.observe("find_all", time.Now(), &err)
	r.logger.Debug("Finding all roles")

	return r.find(ctx, "find_all", "", &clauses{}, roleOrder()...)
}

// FindAllByReference returns the roles defined for a reference
func (r *RoleRepo) FindAllByReference(ctx context.Context, referenceID string, referenceType model.RoleReferenceType) (_ []*model.Role, err error) {
	defer r.observe("find_all_by_reference", time.Now(), &err)
	r.logger.Debug("Finding roles by reference",
		zap.String("reference_id", referenceID), zap.String("reference_type", string(referenceType)))

	where := &clauses{}
	roleReference(where, referenceID, referenceType)
	return r.find(ctx, "find_all_by_reference", "", where, roleOrder()...)
}

// FindByScopeAndReference returns the roles of one scope defined for a reference
func (r *RoleRepo) FindByScopeAndReference(ctx context.Context, scope model.RoleScope, referenceID string, referenceType model.RoleReferenceType) (_ []*model.Role, err error) {
	defer r.observe("find_by_scope_and_reference", time.Now(), &err)
	r.logger.Debug("Finding roles by scope and reference", zap.String("scope", string(scope)),
		zap.String("reference_id", referenceID), zap.String("reference_type", string(referenceType)))

	where := &clauses{}
	where.AddEqual(qualified("r", "scope"), string(scope))
	roleReference(where, referenceID, referenceType)
	return r.find(ctx, "find_by_scope_and_reference", "", where, roleOrder()...)
}

// FindByScopeAndNameAndReference returns the named role of a scope, or nil
func (r *RoleRepo) FindByScopeAndNameAndReference(ctx context.Context, scope model.RoleScope, name, referenceID string, referenceType model.RoleReferenceType) (_ *model.Role, err error) {
	defer r.observe("find_by_scope_and_name_and_reference", time.Now(), &err)
	r.logger.Debug("Finding role by scope, name and reference", zap.String("scope", string(scope)),
		zap.String("name", name), zap.String("reference_id", referenceID))

	where := &clauses{}
	where.AddEqual(qualified("r", "scope"), string(scope))
	where.AddEqual(qualified("r", "name"), name)
	roleReference(where, referenceID, referenceType)
	return r.findOne(ctx, "find_by_scope_and_name_and_reference", "", where)
}
