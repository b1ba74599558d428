package sqlinline

const QInsertBatchJob = `--sql 1e69687a-50cd-49a6-896d-69630a0dee63
insert into batch_jobs (
    id,
    user_id,
    store_id,
    status,
    content_types,
    settings,
    total_items
)
values ($1, $2, $3, 'pending', $4::jsonb, $5::jsonb, $6);
`

const QInsertBatchItem = `--sql 884e7269-78a0-4826-84c2-4f8d51e75852
insert into batch_job_items (id, job_id, product_id, status)
values ($1, $2, $3, 'pending');
`

const QMarkBatchJobRunning = `--sql ff321827-25d7-4b44-b9e7-a33fd4cd5040
update batch_jobs
set status = 'running', started_at = now(), updated_at = now()
where id = $1;
`

const QUpdateBatchJobProgress = `--sql ce5f7637-4e3f-4983-894c-aa53c44047df
update batch_jobs
set processed_items = $2,
    successful_items = $3,
    failed_items = $4,
    updated_at = now()
where id = $1;
`

const QFinishBatchJob = `--sql 5a3aab87-362f-4d1f-970b-dacdfb1df944
update batch_jobs
set status = $2,
    error_message = nullif($3, ''),
    completed_at = now(),
    updated_at = now()
where id = $1;
`

const QUpdateBatchItemStatus = `--sql 328891a7-e25c-4824-b87a-43f12af4bccd
update batch_job_items
set status = $2,
    error_message = nullif($3, ''),
    updated_at = now()
where id = $1;
`

const QSelectBatchJobForUser = `--sql 2175ab4a-7232-4466-b52e-13a1e0eac63a
select id, user_id, store_id, status, content_types, settings,
       total_items, processed_items, successful_items, failed_items,
       coalesce(error_message, ''), started_at, completed_at, created_at, updated_at
from batch_jobs
where id = $1 and user_id = $2;
`

const QSelectBatchItems = `--sql 3a749358-39ba-47f5-95d8-ffe000957d4b
select id, job_id, product_id, status, coalesce(error_message, ''), created_at, updated_at
from batch_job_items
where job_id = $1
order by created_at asc, id asc;
`

const QFailAbandonedBatchJobs = `--sql a0239596-6aa2-47bb-9a67-4c3a2e53adbd
update batch_jobs
set status = 'failed',
    error_message = 'abandoned: no progress recorded',
    completed_at = now(),
    updated_at = now()
where status = 'running'
  and updated_at < now() - $1::interval;
`
