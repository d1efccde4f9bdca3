package ingest

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"iv-data/internal/export"
	"iv-data/internal/sensibull"
	"iv-data/internal/slogx"
	"iv-data/internal/store"
)

// Job represents one fetch unit (one tradingsymbol, full available history).
type Job struct {
	Symbol string
}

// JobResult is sent by workers for fan-in
type JobResult struct {
	Ok     bool
	Symbol string
	Reason string
	Bars   int
}

// Cmd triggers a fetch run
type Cmd struct{}

// Done signals fetch completion
type Done struct{}

// Options configures one fetch run.
type Options struct {
	Workers      int
	DataDir      string
	ProgressPath string
	Exporter     export.PacketSaver // optional raw packet dump
	ExportDir    string
}

// FilterSymbolsToFetch returns jobs for symbols whose progress entry does not
// already record today's date. The chart endpoint always returns the full
// history and the store upserts by (script, date), so a retried symbol is
// harmless; skipping same-day repeats just avoids pointless traffic.
func FilterSymbolsToFetch(symbols []string, progressPath string, now time.Time) []Job {
	m := loadProgress(progressPath)
	today := now.UTC().Format("2006-01-02")

	var jobs []Job
	for _, s := range symbols {
		if m[s] == today {
			continue
		}
		jobs = append(jobs, Job{Symbol: s})
	}
	return jobs
}

// RunOneFetch runs one fetch cycle in parallel mode, sends done when finished.
func RunOneFetch(
	client *sensibull.Client,
	st *store.Store,
	symbols []string,
	opts Options,
	progressUpdates chan<- ProgressUpdate,
	done chan<- Done,
	shutdown <-chan struct{},
) {
	now := time.Now().UTC()
	jobs := FilterSymbolsToFetch(symbols, opts.ProgressPath, now)
	if len(jobs) == 0 {
		slog.Info("no symbols to fetch, skip")
		done <- Done{}
		return
	}

	skipped := len(symbols) - len(jobs)
	if skipped > 0 {
		slog.Info("symbols up to date, jobs to fetch", "skipped", skipped, "jobs", len(jobs))
	} else {
		slog.Info("jobs to fetch", "jobs", len(jobs))
	}

	var success, failed int
	var successList []string
	var failedList []failedEntry
	defer func() {
		if len(successList) > 0 || len(failedList) > 0 {
			if err := writeRunReport(opts.DataDir, successList, failedList); err != nil {
				slog.Warn("could not write run report", "error", err)
			} else {
				slog.Info("run report saved", "success", len(successList), "failed", len(failedList))
			}
		}
		if len(failedList) > 0 {
			if err := writeErrorLog(opts.DataDir, failedList); err != nil {
				slog.Warn("could not write error log", "error", err)
			}
		}
	}()

	success, failed, successList, failedList = RunParallel(client, st, jobs, opts, progressUpdates, shutdown)
	slog.Info("fetch done", "success", success, "failed", failed)
	done <- Done{}
}

func runJobResultCollector(
	results <-chan JobResult,
	mu *sync.Mutex,
	success, failed *int,
	barsPerSymbol map[string]int,
	successList *[]string,
	failedList *[]failedEntry,
) {
	for r := range results {
		mu.Lock()
		if r.Ok {
			*success++
			*successList = appendSuccess(*successList, r.Symbol)
			barsPerSymbol[r.Symbol] += r.Bars
		} else {
			*failed++
			*failedList = append(*failedList, failedEntry{Symbol: r.Symbol, Reason: r.Reason})
		}
		mu.Unlock()
	}
}

// RunParallel runs the fetch with a bounded worker pool. Result aggregation
// is sorted before reporting so the report content does not depend on
// completion order.
func RunParallel(
	client *sensibull.Client,
	st *store.Store,
	jobs []Job,
	opts Options,
	progressUpdates chan<- ProgressUpdate,
	shutdown <-chan struct{},
) (successCount, failedCount int, successList []string, failedList []failedEntry) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	logs := make(chan string, 2048)
	logger := slogx.NewChanLogger(logs)
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		runLogWriter(logs)
	}()
	defer func() {
		close(logs)
		logWg.Wait()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pending := make(chan Job, len(jobs))
	for _, j := range jobs {
		pending <- j
	}
	close(pending)

	results := make(chan JobResult, len(jobs)+64)
	var mu sync.Mutex
	var success, failed int
	barsPerSymbol := make(map[string]int)
	var successListPtr []string
	var failedListPtr []failedEntry
	var resWg sync.WaitGroup
	resWg.Add(1)
	go func() {
		defer resWg.Done()
		runJobResultCollector(results, &mu, &success, &failed, barsPerSymbol, &successListPtr, &failedListPtr)
	}()

	go runHeartbeat(ctx, 30*time.Second, len(jobs), &mu, &success, &failed, barsPerSymbol, logger)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-shutdown:
					return
				case job, ok := <-pending:
					if !ok {
						return
					}
					results <- fetchOne(ctx, client, st, job, opts, progressUpdates, logger)
				}
			}
		}()
	}
	wg.Wait()
	close(results)
	resWg.Wait()
	cancel()

	mu.Lock()
	sort.Strings(successListPtr)
	sort.Slice(failedListPtr, func(i, j int) bool { return failedListPtr[i].Symbol < failedListPtr[j].Symbol })
	var total int
	for _, n := range barsPerSymbol {
		total += n
	}
	s, f := success, failed
	mu.Unlock()

	logger.Info("summary", "total_bars", total, "success", s, "failed", f)
	if len(barsPerSymbol) > 0 {
		symbols := make([]string, 0, len(barsPerSymbol))
		for sym := range barsPerSymbol {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		for _, sym := range symbols {
			logger.Info("summary symbol", "symbol", sym, "bars", barsPerSymbol[sym])
		}
	}
	if len(failedListPtr) > 0 {
		logger.Info("summary failed", "count", len(failedListPtr), "reasons", joinFailedReasons(failedListPtr))
	}

	return s, f, successListPtr, failedListPtr
}

// fetchOne downloads, stores and optionally exports one symbol's history.
// Every failure path is captured in the JobResult; nothing here is fatal to
// the run.
func fetchOne(
	ctx context.Context,
	client *sensibull.Client,
	st *store.Store,
	job Job,
	opts Options,
	progressUpdates chan<- ProgressUpdate,
	logger *slog.Logger,
) JobResult {
	chart, err := client.IVChart(ctx, job.Symbol)
	if err != nil {
		logger.Error("fetch fail", "symbol", job.Symbol, "reason", err.Error())
		return JobResult{Ok: false, Symbol: job.Symbol, Reason: err.Error()}
	}
	bars := chart.Bars()
	if len(bars) == 0 {
		logger.Error("fetch fail", "symbol", job.Symbol, "reason", "no data")
		return JobResult{Ok: false, Symbol: job.Symbol, Reason: "no data"}
	}
	if err := st.UpsertIVBars(ctx, bars); err != nil {
		logger.Error("store fail", "symbol", job.Symbol, "reason", err.Error())
		return JobResult{Ok: false, Symbol: job.Symbol, Reason: err.Error()}
	}

	if opts.Exporter != nil && opts.ExportDir != "" {
		if err := savePacket(opts.Exporter, opts.ExportDir, job.Symbol, bars); err != nil {
			logger.Warn("packet save fail", "symbol", job.Symbol, "error", err)
		}
	}

	logger.Info("fetch ok", "symbol", job.Symbol, "bars", len(bars))
	select {
	case progressUpdates <- ProgressUpdate{Symbol: job.Symbol, Date: time.Now().UTC().Format("2006-01-02")}:
	default:
		logger.Warn("progress channel full, skip update", "symbol", job.Symbol)
	}
	return JobResult{Ok: true, Symbol: job.Symbol, Bars: len(bars)}
}
