package realtime

import "context"

// Topic agrupa suscriptores de una colección filtrada (ej. pets de un owner, comments de un post).
type Topic string

func PetsTopic(ownerUserID string) Topic { return Topic("pets:" + ownerUserID) }

func CommentsTopic(postID string) Topic { return Topic("comments:" + postID) }

type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Event solo avisa que algo cambió; el suscriptor vuelve a leer el snapshot.
type Event struct {
	Topic Topic  `json:"topic"`
	Op    Op     `json:"op"`
	ID    string `json:"id"`
}

// Hub es el primitivo de suscripción en tiempo real.
// Subscribe devuelve la función para desuscribirse; también se desuscribe al cancelar ctx.
type Hub interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(ctx context.Context, topic Topic, fn func(Event)) (unsubscribe func(), err error)
}
