// Command demo runs a small three-round workout script through a Session
// and prints every output statement as it is emitted. Pass --dump <dir> to
// additionally export the finished run's output log as YAML
// (internal/production.YAMLPersister) for later inspection.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/comalice/ironloop"
	"github.com/comalice/ironloop/internal/primitives"
	"github.com/comalice/ironloop/internal/production"
)

func main() {
	dumpDir := flag.String("dump", "", "directory to export the finished run's output log as YAML")
	flag.Parse()

	script := ironloop.Rounds("workout", 3,
		ironloop.Label("intro", "21-15-9"),
		ironloop.Effort("thrusters", "Thrusters"),
		ironloop.Rest("rest", 30000),
		ironloop.Effort("pullups", "Pull-ups"),
	).Build()

	session, err := ironloop.NewSession(script, ironloop.WithTickInterval(250*time.Millisecond))
	if err != nil {
		panic(err)
	}

	unsubOutput := session.SubscribeToOutput(func(entry ironloop.OutputStatement) {
		fmt.Printf("[%d] block=%s type=%s fragments=%d\n", entry.Seq, entry.BlockKey, entry.OutputType, len(entry.Fragments))
	})
	defer unsubOutput()

	if err := session.Start(); err != nil {
		panic(err)
	}

	for i := 0; i < len(script.Children)*3; i++ {
		if session.Complete() {
			break
		}
		if err := session.Send(primitives.EventNext, nil); err != nil {
			fmt.Printf("send error: %v\n", err)
			break
		}
	}

	session.Stop()
	fmt.Println("demo complete")

	if *dumpDir != "" {
		persister, err := production.NewYAMLPersister(*dumpDir)
		if err != nil {
			fmt.Printf("dump setup failed: %v\n", err)
			return
		}
		export := production.HistoryExport{SessionID: session.ID(), Entries: session.History()}
		if err := persister.Save(context.Background(), export); err != nil {
			fmt.Printf("dump failed: %v\n", err)
			return
		}
		fmt.Printf("dumped output log to %s/%s.yaml\n", *dumpDir, session.ID())
	}
}
