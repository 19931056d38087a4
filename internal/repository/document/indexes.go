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
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func index(name string, keys ...string) mongo.IndexModel {
	return mongo.IndexModel{Keys: sortBy(keys...), Options: options.Index().SetName(name)}
}

// collectionIndexes lists the secondary indexes of every collection, keyed by unprefixed collection name
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		collEvents: {
			index("ix_events_updated_at", "-updatedAt", "-_id"),
			index("ix_events_environment", "environmentId", "-updatedAt"),
			index("ix_events_type", "type", "-updatedAt"),
		},
		collAudits: {
			index("ix_audits_reference", "referenceType", "referenceId", "-createdAt"),
			index("ix_audits_created_at", "-createdAt"),
		},
		collPlans: {
			index("ix_plans_api", "api", "order"),
		},
		collApiKeys: {
			index("ix_keys_subscription", "subscription"),
			index("ix_keys_plan", "plan"),
			index("ix_keys_application", "application"),
		},
		collApplications: {
			index("ix_applications_name", "name"),
			index("ix_applications_groups", "groups"),
			index("ix_applications_status", "status"),
		},
		collSubscriptions: {
			index("ix_subscriptions_api", "api", "-createdAt"),
			index("ix_subscriptions_application", "application", "-createdAt"),
			index("ix_subscriptions_plan", "plan"),
		},
		collCommands: {
			index("ix_commands_environment", "environmentId", "to", "-updatedAt"),
		},
		collGroups: {
			index("ix_groups_environment", "environmentId", "name"),
		},
		collUsers: {
			index("ix_users_email", "organizationId", "email"),
			index("ix_users_source", "organizationId", "source", "sourceId"),
		},
		collRoles: {
			index("ix_roles_reference", "referenceType", "referenceId", "scope"),
		},
		collOrganizations: {
			index("ix_organizations_hrids", "hrids"),
		},
	}
}

// ensureIndexes creates the missing indexes. Every collection is attempted
// and the failures are combined.
func ensureIndexes(ctx context.Context, db *mongo.Database, prefix string, logger *zap.Logger) error {
	indexes := collectionIndexes()
	names := make([]string, 0, len(indexes))
	for name := range indexes {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		created, err := db.Collection(prefix+name).Indexes().CreateMany(ctx, indexes[name])
		if err != nil {
			logger.Error("Failed to create indexes", zap.String("collection", prefix+name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		logger.Debug("Indexes ensured", zap.String("collection", prefix+name), zap.Strings("indexes", created))
	}

	// GridFS creates its own files and chunks indexes on first upload; media lookups filter on metadata
	files := db.Collection(prefix + bucketMedia + ".files")
	if _, err := files.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "metadata.hash", Value: 1}, {Key: "metadata.api", Value: 1}},
		Options: options.Index().SetName("ix_media_hash_api"),
	}); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}
