package db

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_type') THEN
			CREATE TYPE order_type AS ENUM ('CORRECTIVE', 'PREVENTIVE', 'IMPROVEMENT', 'PREDICTIVE', 'AUTONOMOUS');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_priority') THEN
			CREATE TYPE order_priority AS ENUM ('LOW', 'MEDIUM', 'HIGH', 'CRITICAL');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_status') THEN
			CREATE TYPE order_status AS ENUM ('PENDING', 'IN_PROCESS', 'COMPLETED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'approval_status') THEN
			CREATE TYPE approval_status AS ENUM ('PENDING', 'APPROVED', 'REJECTED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'evidence_kind') THEN
			CREATE TYPE evidence_kind AS ENUM ('IMAGE', 'DOCUMENT');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'reading_status') THEN
			CREATE TYPE reading_status AS ENUM ('NORMAL', 'OUT_OF_RANGE');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('ADMIN', 'REQUESTER', 'EXECUTOR', 'SUPERVISOR', 'COLLABORATOR');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		role user_role NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS maintenance_orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		folio BIGINT NOT NULL UNIQUE,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		type order_type NOT NULL,
		priority order_priority NOT NULL,
		status order_status NOT NULL DEFAULT 'PENDING',
		approval_status approval_status NOT NULL DEFAULT 'PENDING',
		requester_id UUID NOT NULL,
		executor_id UUID,
		supervisor_id UUID,
		collaborator_id UUID,
		approver_id UUID,
		metadata JSONB,
		work_performed TEXT,
		resources_used TEXT,
		execution_rating SMALLINT,
		approval_comments TEXT,
		requester_rating SMALLINT,
		requester_feedback TEXT,
		scheduled_for TIMESTAMPTZ,
		started_at TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		approval_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_orders_requester ON maintenance_orders (requester_id);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_orders_executor ON maintenance_orders (executor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_orders_status ON maintenance_orders (status);`,
	`CREATE TABLE IF NOT EXISTS order_evidence (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES maintenance_orders (id),
		url TEXT,
		storage_path TEXT NOT NULL,
		bucket VARCHAR(128) NOT NULL,
		kind evidence_kind NOT NULL,
		filename VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_order_evidence_order ON order_evidence (order_id);`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		sku VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit VARCHAR(32) NOT NULL,
		location VARCHAR(128),
		min_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS logbooks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		equipment VARCHAR(255) NOT NULL,
		unit VARCHAR(32) NOT NULL,
		min_value DOUBLE PRECISION NOT NULL,
		max_value DOUBLE PRECISION NOT NULL,
		supervisor_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS logbook_readings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		logbook_id UUID NOT NULL REFERENCES logbooks (id),
		recorded_by UUID NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		status reading_status NOT NULL,
		note TEXT,
		recorded_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_logbook_readings_logbook ON logbook_readings (logbook_id);`,
}

func RunMigrations(database *gorm.DB, log zerolog.Logger) error {
	for i, stmt := range migrationStatements {
		if err := database.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i, err)
		}
	}
	log.Info().Int("statements", len(migrationStatements)).Msg("migrations applied")
	return nil
}
