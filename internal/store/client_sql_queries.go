// SPDX-License-Identifier: Apache-2.0

package store

// Logical record names in the local record store. They mirror the keys the
// mobile app used in its device storage, so an installation migrated from
// the old client keeps its data.
const (
	recordSettings        = "userSettings"
	recordTrainingHistory = "trainingHistory"
	recordCustomTrainings = "customTrainings"
	recordLanguage        = "userLanguage"
	recordDeviceID        = "deviceId"
)

const (
	createRecordsTable = `
		CREATE TABLE IF NOT EXISTS records (
			name       TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`
)
