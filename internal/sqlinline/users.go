package sqlinline

const QSelectUserByID = `--sql 6037b548-585f-4bdc-940c-da2803883c92
select id, email, coalesce(full_name, ''), coalesce(locale, 'en'), plan, properties, created_at, updated_at
from users
where id = $1;
`
