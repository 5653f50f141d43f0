package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

const tasksCollection = "tasks"

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type mongoTask struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `bson:"owner_id"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(task.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	doc := mongoTask{
		OwnerID:   owner,
		Text:      task.Text,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.Unix(),
		UpdatedAt: task.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ListByOwner returns the owner's tasks in insertion order.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]*domain.Task, 0)
	for cursor.Next(ctx) {
		var mt mongoTask
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial mutation. The filter always includes owner_id so a
// task id belonging to someone else resolves to ErrTaskNotFound.
func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, update ports.TaskUpdate) (*domain.Task, error) {
	filter, err := ownedTaskFilter(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if update.Text != nil {
		set["text"] = *update.Text
	}
	if update.Completed != nil {
		set["completed"] = *update.Completed
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mt mongoTask
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	filter, err := ownedTaskFilter(ownerID, taskID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by every task query.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}

func ownedTaskFilter(ownerID, taskID string) (bson.M, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	return bson.M{"_id": id, "owner_id": owner}, nil
}

func (mt mongoTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:        mt.ID.Hex(),
		OwnerID:   mt.OwnerID.Hex(),
		Text:      mt.Text,
		Completed: mt.Completed,
		CreatedAt: unixToTime(mt.CreatedAt),
		UpdatedAt: unixToTime(mt.UpdatedAt),
	}
}
