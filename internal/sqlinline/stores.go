package sqlinline

const QSelectStoreForOwner = `--sql 577b14da-9e8a-4f9d-b6ac-8c3f99a78057
select id, user_id, name, platform, coalesce(domain, ''),
       sync_status, last_synced_at, created_at, updated_at
from stores
where id = $1 and user_id = $2;
`

const QSelectStoresByOwner = `--sql caa94f2b-a8c9-4453-ab2c-809f7dcc5f90
select id, user_id, name, platform, coalesce(domain, ''),
       sync_status, last_synced_at, created_at, updated_at
from stores
where user_id = $1
order by created_at asc;
`
