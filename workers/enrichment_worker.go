package workers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/disneybound/disneyboundbackend/models"
	"github.com/disneybound/disneyboundbackend/repository"
)

// enrichmentTimeout bounds a single enrichment attempt. The job is detached
// from the request that triggered it, so this is its only deadline.
const enrichmentTimeout = 30 * time.Second

// Enricher is the thumbnail-enrichment operation run by the pool workers.
type Enricher interface {
	Enrich(ctx context.Context, character *models.Character) bool
}

type EnrichmentJob struct {
	CharacterID uint
}

// EnrichmentProcessor runs thumbnail enrichment on a pool of background
// workers. Requests queue jobs fire-and-forget and never wait on the outcome.
type EnrichmentProcessor struct {
	JobQueue      chan EnrichmentJob
	CharacterRepo repository.CharacterRepositoryInterface
	Enricher      Enricher
	Wg            sync.WaitGroup
	StopChan      chan struct{}
	Pending       map[uint]bool
	Mutex         sync.Mutex

	stopOnce sync.Once
}

func NewEnrichmentProcessor(characterRepo repository.CharacterRepositoryInterface, enricher Enricher, queueSize, numWorkers int) *EnrichmentProcessor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	proc := &EnrichmentProcessor{
		JobQueue:      make(chan EnrichmentJob, queueSize),
		CharacterRepo: characterRepo,
		Enricher:      enricher,
		StopChan:      make(chan struct{}),
		Pending:       make(map[uint]bool),
	}
	proc.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go proc.worker(i)
	}
	log.Printf("Started %d enrichment worker(s) with queue size %d", numWorkers, queueSize)
	return proc
}

// QueueEnrichment schedules thumbnail enrichment for a character. It never
// blocks: a character already pending is skipped, a stopped pool ignores the
// call, and a full queue drops the job with a log line. A later search for
// the same character re-queues it.
func (ep *EnrichmentProcessor) QueueEnrichment(characterID uint) {
	select {
	case <-ep.StopChan:
		return
	default:
	}

	ep.Mutex.Lock()
	if ep.Pending[characterID] {
		ep.Mutex.Unlock()
		return
	}
	ep.Pending[characterID] = true
	ep.Mutex.Unlock()

	select {
	case ep.JobQueue <- EnrichmentJob{CharacterID: characterID}:
	default:
		log.Printf("Enrichment queue full, dropping job for character ID %d", characterID)
		ep.Mutex.Lock()
		delete(ep.Pending, characterID)
		ep.Mutex.Unlock()
	}
}

func (ep *EnrichmentProcessor) worker(id int) {
	defer ep.Wg.Done()

	log.Printf("Enrichment worker %d started", id)
	for {
		select {
		case job, ok := <-ep.JobQueue:
			if !ok {
				log.Printf("Enrichment worker %d stopping: Job queue closed", id)
				return
			}

			ep.processEnrichmentJob(id, job)

			ep.Mutex.Lock()
			delete(ep.Pending, job.CharacterID)
			ep.Mutex.Unlock()

		case <-ep.StopChan:
			log.Printf("Enrichment worker %d stopping: Stop signal received", id)
			return
		}
	}
}

// processEnrichmentJob re-fetches the character and runs enrichment under a
// background context; the triggering request may be long gone.
func (ep *EnrichmentProcessor) processEnrichmentJob(workerID int, job EnrichmentJob) {
	ctx, cancel := context.WithTimeout(context.Background(), enrichmentTimeout)
	defer cancel()

	character, err := ep.CharacterRepo.GetByID(job.CharacterID)
	if err != nil {
		log.Printf("Worker %d: ERROR fetching character ID %d for enrichment: %v", workerID, job.CharacterID, err)
		return
	}

	if ep.Enricher.Enrich(ctx, character) {
		log.Printf("Worker %d: Enrichment complete for %s", workerID, character.Name)
	} else {
		log.Printf("Worker %d: No thumbnail attached for %s", workerID, character.Name)
	}
}

// Stop signals all workers to exit and waits for them to finish. Safe to call
// more than once.
func (ep *EnrichmentProcessor) Stop() {
	ep.stopOnce.Do(func() {
		close(ep.StopChan)
		ep.Wg.Wait()
		log.Printf("All enrichment workers stopped")
	})
}
