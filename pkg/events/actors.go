package events

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/storefront/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// OrderPlaced is sent after an order transaction commits.
type OrderPlaced struct {
	OrderID     string
	UserID      string
	TotalAmount float64
	LineCount   int
}

// NotificationActor tells the customer their order went through. Delivery
// is a log line for now; the message shape is what a mail/push sender needs.
type NotificationActor struct {
	logger *zap.Logger
}

func (a *NotificationActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *OrderPlaced:
		a.logger.Info("Sending order confirmation",
			zap.String("order_id", msg.OrderID),
			zap.String("user_id", msg.UserID),
			zap.Float64("total_amount", msg.TotalAmount))

	case *actor.Started:
		a.logger.Info("Notification actor started")

	case *actor.Stopping:
		a.logger.Info("Notification actor stopping")
	}
}

// AuditActor persists an audit trail entry for every placed order.
type AuditActor struct {
	mongo  *repository.MongoRepository
	logger *zap.Logger
}

func (a *AuditActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *OrderPlaced:
		err := a.mongo.CreateAuditLog(context.Background(), &repository.AuditLog{
			Service:  "storefront",
			Action:   "order_placed",
			EntityID: msg.OrderID,
			Data: bson.M{
				"user_id":      msg.UserID,
				"total_amount": msg.TotalAmount,
				"line_count":   msg.LineCount,
			},
		})
		if err != nil {
			a.logger.Error("Failed to write audit log",
				zap.String("order_id", msg.OrderID), zap.Error(err))
		}

	case *actor.Started:
		a.logger.Info("Audit actor started")
	}
}
