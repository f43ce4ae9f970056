package repository

import (
	"context"
	"errors"
	"fmt"
	"rhr/pkg/config"
	"rhr/pkg/model"
	"time"

	roomserrors "rhr/internal/rooms/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Room"
)

type mongoRoomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindByStatus(ctx context.Context, status model.RoomStatus) ([]*model.Room, error)
	FindByStatusSortedByPrice(ctx context.Context, status model.RoomStatus, ascending bool) ([]*model.Room, error)
	Transition(ctx context.Context, id string, from, to model.RoomStatus, date *string) error
	SetCheckInDate(ctx context.Context, id string, date string) error
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a store call with the configured deadline unless the
// request context already carries a tighter one.
func (r *mongoRoomRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	var room model.Room
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, roomserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return &room, nil
}

func (r *mongoRoomRepository) FindByStatus(ctx context.Context, status model.RoomStatus) ([]*model.Room, error) {
	return r.findByStatus(ctx, status, nil)
}

func (r *mongoRoomRepository) FindByStatusSortedByPrice(ctx context.Context, status model.RoomStatus, ascending bool) ([]*model.Room, error) {
	direction := -1
	if ascending {
		direction = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: "price", Value: direction}})
	return r.findByStatus(ctx, status, opts)
}

func (r *mongoRoomRepository) findByStatus(ctx context.Context, status model.RoomStatus, opts *options.FindOptions) ([]*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"status": status}

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []*model.Room{}
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

// Transition moves a room between statuses with a conditional write: the
// update only applies when the current status matches the expected pre-state,
// so two racing transitions on the same room cannot both win. No document is
// created on a miss; the caller distinguishes missing from conflicting by
// re-reading.
func (r *mongoRoomRepository) Transition(ctx context.Context, id string, from, to model.RoomStatus, date *string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": from}
	set := bson.M{"status": to}
	if date != nil {
		set["date"] = *date
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}

	if result.MatchedCount == 0 {
		return roomserrors.ErrPreconditionFailed
	}

	return nil
}

// SetCheckInDate moves the check-in date of a room that is currently Booked.
func (r *mongoRoomRepository) SetCheckInDate(ctx context.Context, id string, date string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": model.StatusBooked}
	update := bson.M{"$set": bson.M{"date": date}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update check-in date: %w", err)
	}

	if result.MatchedCount == 0 {
		return roomserrors.ErrPreconditionFailed
	}

	return nil
}
