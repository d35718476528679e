package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/iniside/velesarc-craft/internal/entities/station"
)

const (
	entryPrefix   = "craft_queue:entry:"
	stationPrefix = "craft_queue:station:"
)

type problem struct {
	entryKey  string
	stationID string
	entryID   string
	reason    string
}

// checkEntry returns why the stored entry is unusable, or "" when it is fine
func checkEntry(ctx context.Context, client *redis.Client, key, data string) (string, *station.QueueEntry) {
	var entry station.QueueEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return "invalid JSON", nil
	}
	switch {
	case entry.EntryID != strings.TrimPrefix(key, entryPrefix):
		return fmt.Sprintf("entry id %q does not match key", entry.EntryID), &entry
	case entry.StationID == "":
		return "no station id", &entry
	case entry.Amount < 1:
		return fmt.Sprintf("amount %d", entry.Amount), &entry
	case entry.CompletedAmount >= entry.Amount:
		return fmt.Sprintf("completed %d of %d but still queued", entry.CompletedAmount, entry.Amount), &entry
	}

	exists, err := client.Exists(ctx, "station:"+entry.StationID).Result()
	if err == nil && exists == 0 {
		return fmt.Sprintf("station %s no longer exists", entry.StationID), &entry
	}
	return "", &entry
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning craft queue entries...")

	iter := client.Scan(ctx, 0, entryPrefix+"*", 0).Iterator()

	var problems []problem
	checked := 0

	for iter.Next(ctx) {
		key := iter.Val()
		checked++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		reason, entry := checkEntry(ctx, client, key, data)
		if reason == "" {
			continue
		}
		p := problem{entryKey: key, entryID: strings.TrimPrefix(key, entryPrefix), reason: reason}
		if entry != nil {
			p.stationID = entry.StationID
		}
		fmt.Printf("x %s: %s\n", key, reason)
		problems = append(problems, p)
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d entries, found %d broken\n", checked, len(problems))

	if len(problems) == 0 {
		return
	}

	fmt.Print("\nDo you want to DELETE these entries and their queue index members? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, p := range problems {
		pipe := client.TxPipeline()
		pipe.Del(ctx, p.entryKey)
		if p.stationID != "" {
			pipe.ZRem(ctx, stationPrefix+p.stationID, p.entryID)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", p.entryKey, err)
			continue
		}
		fmt.Printf("Deleted %s\n", p.entryKey)
	}
	fmt.Println("\nCleanup complete!")
}
