package postgres

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	kind          TEXT NOT NULL CHECK (kind IN ('automatic', 'manual')),
	balance       NUMERIC NOT NULL DEFAULT 0,
	total_income  NUMERIC NOT NULL DEFAULT 0,
	total_expense NUMERIC NOT NULL DEFAULT 0,
	active        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clients (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	total_debt NUMERIC NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS distributors (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	phone           TEXT NOT NULL DEFAULT '',
	pending_balance NUMERIC NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS purchase_orders (
	id               TEXT PRIMARY KEY,
	distributor_id   TEXT NOT NULL REFERENCES distributors(id),
	quantity_ordered BIGINT NOT NULL CHECK (quantity_ordered > 0),
	unit_cost        NUMERIC NOT NULL,
	unit_freight     NUMERIC NOT NULL,
	amount_owed      NUMERIC NOT NULL,
	amount_paid      NUMERIC NOT NULL DEFAULT 0,
	stock_remaining  BIGINT NOT NULL,
	state            TEXT NOT NULL,
	note             TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sales (
	id                  TEXT PRIMARY KEY,
	client_id           TEXT NOT NULL REFERENCES clients(id),
	purchase_order_id   TEXT REFERENCES purchase_orders(id),
	quantity            BIGINT NOT NULL,
	sale_unit_price     NUMERIC NOT NULL,
	purchase_unit_price NUMERIC NOT NULL,
	freight_unit_price  NUMERIC NOT NULL,
	total               NUMERIC NOT NULL,
	bucket_cost         NUMERIC NOT NULL,
	bucket_freight      NUMERIC NOT NULL,
	bucket_profit       NUMERIC NOT NULL,
	amount_paid         NUMERIC NOT NULL DEFAULT 0,
	amount_remaining    NUMERIC NOT NULL,
	payment_state       TEXT NOT NULL,
	note                TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_sales_purchase_order ON sales (purchase_order_id);
CREATE INDEX IF NOT EXISTS idx_sales_client ON sales (client_id);

CREATE TABLE IF NOT EXISTS movements (
	id                      TEXT PRIMARY KEY,
	account_id              TEXT NOT NULL REFERENCES accounts(id),
	kind                    TEXT NOT NULL,
	amount                  NUMERIC NOT NULL CHECK (amount > 0),
	ts                      TIMESTAMPTZ NOT NULL,
	note                    TEXT NOT NULL DEFAULT '',
	counterparty_account_id TEXT,
	transfer_group_id       TEXT,
	sale_id                 TEXT,
	purchase_order_id       TEXT,
	bucket                  TEXT,
	created_by              TEXT
);
CREATE INDEX IF NOT EXISTS idx_movements_account_ts ON movements (account_id, ts DESC);
CREATE INDEX IF NOT EXISTS idx_movements_transfer_group ON movements (transfer_group_id);
`
