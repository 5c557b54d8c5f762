package worldmap

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// datasetMessage is the wire format of a live feed: a full dataset snapshot
// per message. Unknown message types are ignored.
type datasetMessage struct {
	Type string     `json:"type"`
	Data []DataItem `json:"data"`
}

// ListenForUpdates subscribes to a websocket feed of dataset snapshots and
// queues each one for the next Update tick. It reconnects forever with
// capped exponential backoff; run it in its own goroutine.
func (e *Engine) ListenForUpdates(url string) {
	backoff := 1 * time.Second
	for {
		log.Printf("Connecting to dataset feed: %s", url)
		c, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			log.Printf("Dial error: %v. Retrying in %v...", err, backoff)
			time.Sleep(backoff)
			backoff *= 2
			if backoff > 60*time.Second {
				backoff = 60 * time.Second
			}
			continue
		}
		backoff = 1 * time.Second

		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v. Reconnecting...", err)
				break
			}
			var msg datasetMessage
			if json.Unmarshal(message, &msg) != nil {
				continue
			}
			switch msg.Type {
			case "dataset":
				e.QueueData(msg.Data)
			case "error":
				log.Printf("[FEED ERROR] %s", string(message))
			}
		}
		c.Close()
		time.Sleep(time.Second)
	}
}
