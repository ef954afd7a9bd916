package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/procmine/docflow/internal/db"
	"github.com/procmine/docflow/internal/domain"
)

type datasetRepository struct {
	conn *db.Connection
}

// NewDatasetRepository wires a repository backed by pgxpool.
func NewDatasetRepository(conn *db.Connection) DatasetRepository {
	return &datasetRepository{conn: conn}
}

func (r *datasetRepository) SaveDataset(ctx context.Context, ds *domain.Dataset) error {
	if r.conn == nil || r.conn.Pool == nil {
		return fmt.Errorf("dataset repository not initialized")
	}

	stats, err := json.Marshal(ds.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode run stats: %w", err)
	}

	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO runs (run_id, source, stats) VALUES ($1, $2, $3)`,
			ds.RunID, ds.Source, stats)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		batch := &pgx.Batch{}
		for _, collection := range [][]domain.Document{ds.Orders, ds.Deliveries, ds.Invoices} {
			for i := range collection {
				queueDocument(batch, ds.RunID, &collection[i])
			}
		}
		for _, edge := range ds.FlowEdges {
			batch.Queue(
				`INSERT INTO flow_edges (run_id, preceding_doc, preceding_category, subsequent_doc, subsequent_category, quantity, occurred_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				ds.RunID, edge.PrecedingDoc, string(edge.PrecedingCat),
				edge.SubsequentDoc, string(edge.SubsequentCat), edge.Quantity, edge.OccurredAt)
		}
		for _, party := range ds.Parties {
			batch.Queue(
				`INSERT INTO parties (run_id, party_id, name, country, region, city, postal_code, account_group)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				ds.RunID, party.ID, party.Name, party.Country, party.Region,
				party.City, party.PostalCode, party.AccountGroup)
		}
		for _, warning := range ds.Warnings {
			batch.Queue(
				`INSERT INTO warnings (run_id, resource, row_number, message) VALUES ($1, $2, $3, $4)`,
				ds.RunID, warning.Resource, warning.Row, warning.Message)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert dataset rows: %w", err)
			}
		}
		return nil
	})
}

func queueDocument(batch *pgx.Batch, runID uuid.UUID, doc *domain.Document) {
	texts, _ := json.Marshal(doc.Texts)
	timing, _ := json.Marshal(doc.Timing)
	batch.Queue(
		`INSERT INTO documents (run_id, document_number, doc_type, category, type_code, created_date, requested_date, party_id, org_unit, currency, net_value, synthetic, texts, timing)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		runID, doc.Number, string(doc.Type), string(doc.Category), doc.TypeCode,
		doc.CreatedAt, doc.RequestedAt, doc.PartyID, doc.OrgUnit, doc.Currency,
		doc.NetValue, doc.Synthetic, texts, timing)
	for _, item := range doc.Items {
		batch.Queue(
			`INSERT INTO document_items (run_id, document_number, item_number, material_id, quantity, net_value, plant, shipping_point, item_category, unit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			runID, doc.Number, item.ItemNumber, item.MaterialID, item.Quantity,
			item.NetValue, item.Plant, item.ShippingPoint, item.ItemCategory, item.Unit)
	}
}

func (r *datasetRepository) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if r.conn == nil || r.conn.Pool == nil {
		return nil, fmt.Errorf("dataset repository not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.conn.Pool.Query(ctx,
		`SELECT r.run_id, r.source, r.created_at,
		        (SELECT count(*) FROM documents d WHERE d.run_id = r.run_id),
		        (SELECT count(*) FROM flow_edges e WHERE e.run_id = r.run_id),
		        (SELECT count(*) FROM warnings w WHERE w.run_id = r.run_id)
		 FROM runs r
		 ORDER BY r.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.Source, &s.CreatedAt, &s.Documents, &s.Edges, &s.Warnings); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run summaries: %w", err)
	}
	return summaries, nil
}

func (r *datasetRepository) DeleteRun(ctx context.Context, runID uuid.UUID) error {
	if r.conn == nil || r.conn.Pool == nil {
		return fmt.Errorf("dataset repository not initialized")
	}
	if _, err := r.conn.Pool.Exec(ctx, `DELETE FROM runs WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}
