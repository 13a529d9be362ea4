package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

const collectionDeliveryAreas = "delivery_areas"

// ZoneRepository implements ports.ZoneRepository. Documents are written by
// the zone administration tool; this service only reads them.
type ZoneRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewZoneRepository(db *mongo.Database) *ZoneRepository {
	return &ZoneRepository{col: db.Collection(collectionDeliveryAreas), timeout: defaultTimeout}
}

type zoneDocument struct {
	ID          any              `bson:"_id"`
	Name        string           `bson:"name"`
	Polygon     []vertexDocument `bson:"polygon"`
	ActiveDays  []string         `bson:"active_days"`
	PostalCodes []string         `bson:"postal_codes"`
	Enabled     *bool            `bson:"enabled"`
	Position    int              `bson:"position"`
}

type vertexDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

// ListZones returns every zone ordered by position, then _id. Disabled zones
// are included; filtering them is the matcher's job.
func (r *ZoneRepository) ListZones(ctx context.Context) ([]domain.DeliveryArea, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "position", Value: 1},
		{Key: "_id", Value: 1},
	})

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find delivery areas: %w", err)
	}
	defer cur.Close(ctx)

	var docs []zoneDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode delivery areas: %w", err)
	}

	zones := make([]domain.DeliveryArea, 0, len(docs))
	for _, d := range docs {
		zones = append(zones, d.toDomain())
	}
	return zones, nil
}

// EnsureIndexes creates the index backing the ListZones sort.
func (r *ZoneRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}

// toDomain maps a stored document. A missing enabled flag means enabled.
// Unknown day names are dropped, so a zone with only bad days is never
// active.
func (d zoneDocument) toDomain() domain.DeliveryArea {
	area := domain.DeliveryArea{
		ID:          idString(d.ID),
		Name:        d.Name,
		Polygon:     make([]domain.Coordinate, 0, len(d.Polygon)),
		ActiveDays:  make([]domain.WeekDay, 0, len(d.ActiveDays)),
		PostalCodes: d.PostalCodes,
		Enabled:     d.Enabled == nil || *d.Enabled,
	}
	for _, v := range d.Polygon {
		area.Polygon = append(area.Polygon, domain.Coordinate{Lat: v.Lat, Lng: v.Lng})
	}
	for _, s := range d.ActiveDays {
		if day, err := domain.ParseWeekDay(s); err == nil {
			area.ActiveDays = append(area.ActiveDays, day)
		}
	}
	return area
}

func idString(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
