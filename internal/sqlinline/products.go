package sqlinline

const QSelectProductForStore = `--sql 6b91c120-9338-4017-a41b-6504b47cd957
select id, store_id, title, coalesce(sku, ''), coalesce(price, 0),
       coalesce(image_url, ''), categories, tags, attributes,
       working_content, draft_content, created_at, updated_at
from products
where id = $1 and store_id = $2;
`

const QSelectProductsByStore = `--sql bd260693-bad3-4bca-b378-5715586a9dc3
select id, store_id, title, coalesce(sku, ''), coalesce(price, 0),
       coalesce(image_url, ''), categories, tags, attributes,
       working_content, draft_content, created_at, updated_at
from products
where store_id = $1
order by updated_at desc
limit $2 offset $3;
`

const QUpdateProductDraft = `--sql 18bf6801-6ff7-4823-a44b-e46f38060510
update products
set draft_content = $2::jsonb, updated_at = now()
where id = $1;
`

const QSelectProductVersions = `--sql 15420e33-ea7d-463f-b26e-e6e4bdc54965
select id, product_id, version, snapshot, coalesce(created_by, ''), created_at
from product_versions
where product_id = $1
order by version desc;
`

const QSelectProductVersion = `--sql 9cfb1404-0544-482b-84b3-9264bd4faeae
select id, product_id, version, snapshot, coalesce(created_by, ''), created_at
from product_versions
where product_id = $1 and version = $2;
`

const QInsertProductVersion = `--sql 1c2cf527-4718-402b-9341-30528db17eab
insert into product_versions (id, product_id, version, snapshot, created_by)
select $1,
       $2,
       coalesce(max(version), 0) + 1,
       $3::jsonb,
       $4
from product_versions
where product_id = $2;
`
