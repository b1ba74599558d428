// Package db holds the canonical schema applied by cmd/migrate.
package db

// Statements are executed in order and are safe to re-run.
var Statements = []string{
	`create extension if not exists "pgcrypto"`,

	`create table if not exists users (
		id uuid primary key default gen_random_uuid(),
		email text not null unique,
		full_name text,
		locale text default 'en',
		plan text not null default 'free',
		properties jsonb not null default '{}'::jsonb,
		created_at timestamptz not null default now(),
		updated_at timestamptz not null default now()
	)`,

	`create table if not exists stores (
		id uuid primary key default gen_random_uuid(),
		user_id uuid not null references users(id) on delete cascade,
		name text not null,
		platform text not null,
		domain text,
		sync_status text not null default 'never',
		last_synced_at timestamptz,
		created_at timestamptz not null default now(),
		updated_at timestamptz not null default now()
	)`,
	`create index if not exists stores_user_idx on stores (user_id)`,

	`create table if not exists products (
		id uuid primary key default gen_random_uuid(),
		store_id uuid not null references stores(id) on delete cascade,
		title text not null,
		sku text,
		price double precision,
		image_url text,
		categories text[] not null default '{}',
		tags text[] not null default '{}',
		attributes jsonb not null default '{}'::jsonb,
		working_content jsonb not null default '{}'::jsonb,
		draft_content jsonb not null default '{}'::jsonb,
		created_at timestamptz not null default now(),
		updated_at timestamptz not null default now()
	)`,
	`create index if not exists products_store_updated_idx on products (store_id, updated_at desc)`,

	`create table if not exists product_versions (
		id uuid primary key,
		product_id uuid not null references products(id) on delete cascade,
		version integer not null,
		snapshot jsonb not null,
		created_by text,
		created_at timestamptz not null default now(),
		unique (product_id, version)
	)`,

	`create table if not exists batch_jobs (
		id uuid primary key,
		user_id uuid not null references users(id) on delete cascade,
		store_id uuid not null references stores(id) on delete cascade,
		status text not null default 'pending',
		content_types jsonb not null default '{}'::jsonb,
		settings jsonb not null default '{}'::jsonb,
		total_items integer not null default 0,
		processed_items integer not null default 0,
		successful_items integer not null default 0,
		failed_items integer not null default 0,
		error_message text,
		started_at timestamptz,
		completed_at timestamptz,
		created_at timestamptz not null default now(),
		updated_at timestamptz not null default now()
	)`,
	`create index if not exists batch_jobs_user_idx on batch_jobs (user_id, created_at desc)`,
	`create index if not exists batch_jobs_stale_idx on batch_jobs (status, updated_at)`,

	`create table if not exists batch_job_items (
		id uuid primary key,
		job_id uuid not null references batch_jobs(id) on delete cascade,
		product_id uuid not null,
		status text not null default 'pending',
		error_message text,
		created_at timestamptz not null default now(),
		updated_at timestamptz not null default now()
	)`,
	`create index if not exists batch_job_items_job_idx on batch_job_items (job_id)`,

	`create table if not exists integration_tokens (
		provider text primary key,
		token text not null,
		properties jsonb not null default '{}'::jsonb,
		created_at timestamptz not null default now(),
		updated_at timestamptz not null default now()
	)`,
}
