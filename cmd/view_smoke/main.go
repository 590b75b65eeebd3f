// Smoke-tests the full loop against a running server: activates a project
// view over the HTTP API and websocket feed, issues a task and a message,
// and waits for both to come back through the change feed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"artistcollab/internal/client"
	"artistcollab/internal/view"
)

func main() {
	base := flag.String("base", "http://127.0.0.1:8080", "server base URL")
	project := flag.String("project", "", "project id to open")
	flag.Parse()

	token := os.Getenv("TOKEN")
	if *project == "" {
		log.Fatal("-project required")
	}

	api := client.New(*base, token)
	feed := client.NewFeed(*base, token)
	v := view.New(api, api, feed)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := v.Activate(ctx, *project); err != nil {
		log.Fatalf("activate: %v", err)
	}
	defer v.Teardown()
	if v.NotFound() {
		log.Fatal("project not found or not visible")
	}

	p := v.Project()
	log.Printf("project %q me=%s owner=%v tasks=%d messages=%d members=%d",
		p.Title, v.Me(), v.IsOwner(), len(v.Tasks()), len(v.Messages()), len(v.Members()))

	before := len(v.Tasks())
	title := fmt.Sprintf("smoke task %d", time.Now().Unix())
	if err := v.AddTask(ctx, title); err != nil {
		log.Fatalf("add task: %v", err)
	}
	if err := v.SendMessage(ctx, "smoke message"); err != nil {
		log.Fatalf("send message: %v", err)
	}

	deadline := time.After(10 * time.Second)
	for {
		if len(v.Tasks()) > before {
			log.Printf("feed echoed the task, %d tasks now", len(v.Tasks()))
			return
		}
		select {
		case <-deadline:
			log.Fatal("feed echo never arrived")
		case <-time.After(200 * time.Millisecond):
		}
	}
}
