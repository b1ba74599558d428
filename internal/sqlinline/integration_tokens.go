package sqlinline

const QSelectIntegrationToken = `--sql fbd9b8fd-4102-4a52-92d0-69a51b0c2693
select token
from integration_tokens
where provider = $1;
`

const QUpsertIntegrationToken = `--sql 50348f87-6056-44fc-95ed-374ed051945b
insert into integration_tokens (provider, token, properties)
values ($1, $2, $3::jsonb)
on conflict (provider)
do update set token = excluded.token,
              properties = excluded.properties,
              updated_at = now();
`
