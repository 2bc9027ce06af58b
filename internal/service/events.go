package service

import "log"

// EventPublisher is the slice of the message broker the services need;
// *rabbitmq.Publisher satisfies it. A nil publisher disables events.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// publishEvent emits a domain event. A broker failure never fails the
// request that triggered it; it is logged and the response proceeds.
func publishEvent(p EventPublisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		log.Printf("publish %s: %v", routingKey, err)
	}
}
