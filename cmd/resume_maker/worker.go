package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/resumeforge/resume-maker/internal/config"
	"github.com/resumeforge/resume-maker/internal/db"
	"github.com/resumeforge/resume-maker/internal/ingest"
	"github.com/resumeforge/resume-maker/internal/queue"
	"github.com/resumeforge/resume-maker/internal/storage"
)

var workerConfigPath string

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the resume parse worker",
	Long:  `Consume parse jobs from the queue: download the uploaded file, extract its text, build structured sections, and persist the result.`,
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().StringVar(&workerConfigPath, "config", "", "Path to config.json file (values can be overridden by environment variables)")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(workerConfigPath)
	if err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is required for the worker")
	}
	if cfg.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required for the worker")
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	store, err := storage.New(ctx, storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	q, err := queue.Connect(cfg.AMQPURL)
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}

	processor := ingest.NewProcessor(database, store)

	sigCtx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		// Ends the signal context if consuming stops on its own, so the
		// shutdown goroutine below never blocks forever.
		defer stopSignals()
		log.Printf("Worker consuming %s", queue.ParseQueue)
		return q.ConsumeParseJobs(func(job queue.ParseJob) error {
			jobCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()
			return processor.Process(jobCtx, job.ResumeID, job.StorageKey, job.MimeType)
		})
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down worker...")
		// Closing the connection ends the delivery loop in ConsumeParseJobs.
		q.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	log.Println("Worker stopped")
	return nil
}
