package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/niksmo/shoe-store/config"
	"github.com/niksmo/shoe-store/internal/adapter"
	"github.com/niksmo/shoe-store/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	cleanupPolicy     = "delete"
	retention         = 7 * 24 * time.Hour
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	if !cfg.BrokerEnabled() {
		fmt.Println("seed brokers are not set, nothing to do")
		return
	}

	b := cfg.Broker
	tlsCfg, err := adapter.MakeTLSConfig(b.TLS.CAFile, b.TLS.CertFile, b.TLS.KeyFile)
	if err != nil {
		printFail(err)
		os.Exit(1)
	}

	cl := createClient(b.SeedBrokers, tlsCfg)
	defer cl.Close()

	printStart(cfg)
	start := time.Now()

	if err := makeTopics(sigCtx, cl, b.Topics.CartEvents); err != nil {
		printFail(err)
		cl.Close()
		os.Exit(1)
	}

	printComplete(start)
}

func createClient(seedBrokers []string, tlsCfg *tls.Config) *kadm.Client {
	opts := []kgo.Opt{kgo.SeedBrokers(seedBrokers...)}
	if tlsCfg != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}
	cl, err := kadm.NewOptClient(opts...)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, topics ...string,
) error {
	var (
		policy      = cleanupPolicy
		minISR      = "1"
		retentionMs = fmt.Sprint(retention.Milliseconds())
	)

	topicCfg := map[string]*string{
		"cleanup.policy":      &policy,
		"min.insync.replicas": &minISR,
		"retention.ms":        &retentionMs,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		topicCfg,
		topics...,
	)

	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		err := res.Err
		if err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, err)
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(cfg config.Config) {
	fmt.Printf(`initializing topics...
	- %q

`,
		cfg.Broker.Topics.CartEvents,
	)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
