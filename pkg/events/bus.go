package events

import (
	"fmt"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"go.uber.org/zap"
)

// Bus runs the post-order actors and fans order events out to them.
// Messages are fire-and-forget: a slow audit write never blocks a request.
type Bus struct {
	system          *actor.ActorSystem
	notificationPid *actor.PID
	auditPid        *actor.PID
}

func NewBus(mongo *repository.MongoRepository, logger *zap.Logger) (*Bus, error) {
	system := actor.NewActorSystem()

	notificationProps := actor.PropsFromProducer(func() actor.Actor {
		return &NotificationActor{logger: logger.Named("notification-actor")}
	})
	notificationPid, err := system.Root.SpawnNamed(notificationProps, "notification-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn notification actor: %w", err)
	}

	auditProps := actor.PropsFromProducer(func() actor.Actor {
		return &AuditActor{mongo: mongo, logger: logger.Named("audit-actor")}
	})
	auditPid, err := system.Root.SpawnNamed(auditProps, "audit-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn audit actor: %w", err)
	}

	return &Bus{
		system:          system,
		notificationPid: notificationPid,
		auditPid:        auditPid,
	}, nil
}

func (b *Bus) OrderPlaced(order *models.Order) {
	msg := &OrderPlaced{
		OrderID:     order.ID.Hex(),
		UserID:      order.UserID.Hex(),
		TotalAmount: order.TotalAmount,
		LineCount:   len(order.Items),
	}
	b.system.Root.Send(b.notificationPid, msg)
	b.system.Root.Send(b.auditPid, msg)
}

func (b *Bus) Shutdown() {
	b.system.Shutdown()
}
