package rabbit

import (
	"encoding/json"
	"sync"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

//Sender publishes event payloads to a rabbit mq queue
type Sender struct {
	ChannelProvider *ChannelProvider
	m               sync.Mutex
	declared        map[string]bool
}

//NewSender initializes rabbit sender
func NewSender(provider *ChannelProvider) *Sender {
	return &Sender{ChannelProvider: provider, declared: make(map[string]bool)}
}

//Send marshals data and publishes it to the queue
func (sender *Sender) Send(data interface{}, queue string) error {
	msgBytes, err := getBytes(data)
	if err != nil {
		return errors.Wrap(err, "Can't prepare message")
	}
	qName := sender.ChannelProvider.QueueName(queue)
	cmdapp.Log.Infof("Sending message to %s", qName)
	err = sender.ChannelProvider.RunOnChannelWithRetry(func(ch *amqp.Channel) error {
		err := sender.makeSureQueue(ch, qName)
		if err != nil {
			return err
		}
		return ch.Publish(
			"", // exchange
			qName,
			false, // mandatory
			false,
			amqp.Publishing{
				DeliveryMode: amqp.Persistent,
				ContentType:  "application/json",
				Body:         msgBytes,
			})
	})
	if err != nil {
		defer sender.ChannelProvider.Close() // lets init sender again
		return errors.Wrap(err, "Can't send message")
	}
	return nil
}

func (sender *Sender) makeSureQueue(ch *amqp.Channel, qName string) error {
	sender.m.Lock()
	defer sender.m.Unlock()

	if sender.declared[qName] {
		return nil
	}
	_, err := declare(ch, qName)
	if err != nil {
		return errors.Wrap(err, "Can't declare queue "+qName)
	}
	sender.declared[qName] = true
	return nil
}

func getBytes(data interface{}) ([]byte, error) {
	switch v := data.(type) {
	case []byte:
		return v, nil
	default:
		return json.Marshal(v)
	}
}
