package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertMeasurement = `
INSERT INTO measurements (
	id, customer_id, entry_id, units,
	across_back, chest, sleeve_length, around_arm, neck, top_length, wrist,
	trouser_waist, trouser_thigh, trouser_knee, trouser_length, trouser_bars,
	additional_info, branch, version
) VALUES (
	$1, $2, $3, $4,
	$5, $6, $7, $8, $9, $10, $11,
	$12, $13, $14, $15, $16,
	$17, $18, $19
)
`

// InsertMeasurementParams are the values for one measurement row.
// Nil measurement pointers are stored as NULL.
type InsertMeasurementParams struct {
	ID         string
	CustomerID string
	EntryID    string
	Units      string

	AcrossBack    *float64
	Chest         *float64
	SleeveLength  *float64
	AroundArm     *float64
	Neck          *float64
	TopLength     *float64
	Wrist         *float64
	TrouserWaist  *float64
	TrouserThigh  *float64
	TrouserKnee   *float64
	TrouserLength *float64
	TrouserBars   *float64

	AdditionalInfo pgtype.Text
	Branch         pgtype.Text
	Version        int32
}

// InsertMeasurement creates a measurement row for a resolved customer.
func (q *Queries) InsertMeasurement(ctx context.Context, p InsertMeasurementParams) error {
	_, err := q.db.Exec(ctx, insertMeasurement,
		p.ID, p.CustomerID, p.EntryID, p.Units,
		p.AcrossBack, p.Chest, p.SleeveLength, p.AroundArm, p.Neck, p.TopLength, p.Wrist,
		p.TrouserWaist, p.TrouserThigh, p.TrouserKnee, p.TrouserLength, p.TrouserBars,
		p.AdditionalInfo, p.Branch, p.Version,
	)
	return err
}
