package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/ghdash/internal/githubcli"
	"github.com/temirov/ghdash/internal/markdown"
	"github.com/temirov/ghdash/internal/repository"
	"github.com/temirov/ghdash/internal/section"
)

const (
	loggerNotConfiguredMessageConstant  = "dashboard logger not configured"
	listerNotConfiguredMessageConstant  = "dashboard repository lister not configured"
	updaterNotConfiguredMessageConstant = "dashboard section updater not configured"
	writerNotConfiguredMessageConstant  = "dashboard artifact writer not configured"
	markdownPathRequiredMessageConstant = "markdown path must be provided"
	jsonPathRequiredMessageConstant     = "json path must be provided"
	fetchErrorTemplateConstant          = "failed to fetch repositories: %v"
	markdownUpdateErrorTemplateConstant = "failed to update %s: %v"
	artifactWriteErrorTemplateConstant  = "failed to write %s: %v"
	fetchingMessageConstant             = "Fetching repositories"
	fetchedMessageConstant              = "Fetched repositories"
	markdownUpdatedMessageConstant      = "Updated Markdown section"
	artifactWrittenMessageConstant      = "Updated repository artifact"
	branchFailedMessageConstant         = "Dashboard output failed"
	dryRunMessageConstant               = "Rendered Markdown section without writing files"
	finishedMessageConstant             = "Finished"
	logFieldOwnerConstant               = "owner"
	logFieldRepositoriesConstant        = "repositories"
	logFieldPathConstant                = "path"
	logFieldSectionConstant             = "section"
	logFieldElapsedConstant             = "elapsed"
	logFieldFailuresConstant            = "failures"
	authenticatedUserOwnerLabelConstant = "@me"
)

var (
	// ErrLoggerNotConfigured indicates the service was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrRepositoryListerNotConfigured indicates the service was constructed without a repository source.
	ErrRepositoryListerNotConfigured = errors.New(listerNotConfiguredMessageConstant)
	// ErrSectionUpdaterNotConfigured indicates the service was constructed without a Markdown updater.
	ErrSectionUpdaterNotConfigured = errors.New(updaterNotConfiguredMessageConstant)
	// ErrArtifactWriterNotConfigured indicates the service was constructed without a JSON writer.
	ErrArtifactWriterNotConfigured = errors.New(writerNotConfiguredMessageConstant)
	// ErrMarkdownPathRequired indicates an update without a Markdown destination.
	ErrMarkdownPathRequired = errors.New(markdownPathRequiredMessageConstant)
	// ErrJSONPathRequired indicates an update without a JSON destination.
	ErrJSONPathRequired = errors.New(jsonPathRequiredMessageConstant)
)

// RepositoryLister supplies the repository records rendered by the dashboard.
type RepositoryLister interface {
	ListRepositories(executionContext context.Context, options githubcli.RepositoryListOptions) ([]repository.Record, error)
}

// SectionUpdater rewrites a managed section of a file.
type SectionUpdater interface {
	Replace(body string, commentSection section.CommentSection, filePath string) error
}

// ArtifactWriter persists the full repository listing.
type ArtifactWriter interface {
	Write(filePath string, records []repository.Record) error
}

// UpdateOptions configures a single dashboard run.
type UpdateOptions struct {
	MarkdownPath     string
	JSONPath         string
	Section          section.CommentSection
	DescriptionLimit int
	Listing          githubcli.RepositoryListOptions
	// DryRun renders the Markdown body without writing either file.
	DryRun bool
}

// UpdateResult summarizes a completed run.
type UpdateResult struct {
	RepositoryCount int
	Body            string
	Elapsed         time.Duration
}

// FetchError reports a repository listing failure. No file is written when it occurs.
type FetchError struct {
	Cause error
}

// Error describes the fetch failure.
func (fetchError FetchError) Error() string {
	return fmt.Sprintf(fetchErrorTemplateConstant, fetchError.Cause)
}

// Unwrap exposes the listing failure.
func (fetchError FetchError) Unwrap() error {
	return fetchError.Cause
}

// MarkdownUpdateError reports a failure of the Markdown branch.
type MarkdownUpdateError struct {
	Path  string
	Cause error
}

// Error describes the Markdown failure.
func (updateError MarkdownUpdateError) Error() string {
	return fmt.Sprintf(markdownUpdateErrorTemplateConstant, updateError.Path, updateError.Cause)
}

// Unwrap exposes the replacer failure.
func (updateError MarkdownUpdateError) Unwrap() error {
	return updateError.Cause
}

// ArtifactWriteError reports a failure of the JSON branch.
type ArtifactWriteError struct {
	Path  string
	Cause error
}

// Error describes the JSON failure.
func (writeError ArtifactWriteError) Error() string {
	return fmt.Sprintf(artifactWriteErrorTemplateConstant, writeError.Path, writeError.Cause)
}

// Unwrap exposes the writer failure.
func (writeError ArtifactWriteError) Unwrap() error {
	return writeError.Cause
}

// Service fetches repositories once and fans the result out to the Markdown section and the JSON artifact.
type Service struct {
	logger  *zap.Logger
	lister  RepositoryLister
	updater SectionUpdater
	writer  ArtifactWriter
	clock   func() time.Time
}

// NewService constructs a Service.
func NewService(logger *zap.Logger, lister RepositoryLister, updater SectionUpdater, writer ArtifactWriter) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if lister == nil {
		return nil, ErrRepositoryListerNotConfigured
	}
	if updater == nil {
		return nil, ErrSectionUpdaterNotConfigured
	}
	if writer == nil {
		return nil, ErrArtifactWriterNotConfigured
	}
	return &Service{logger: logger, lister: lister, updater: updater, writer: writer, clock: time.Now}, nil
}

// Run fetches the repository list and, unless DryRun is set, concurrently rewrites the Markdown section
// and the JSON artifact. A fetch failure aborts before either write. Branch failures are combined with
// multierr and neither branch is rolled back when the other fails.
func (service *Service) Run(executionContext context.Context, options UpdateOptions) (UpdateResult, error) {
	startTime := service.clock()

	if validationError := service.validateOptions(options); validationError != nil {
		return UpdateResult{}, validationError
	}

	service.logger.Info(fetchingMessageConstant, zap.String(logFieldOwnerConstant, describeOwner(options.Listing.Owner)))
	records, fetchError := service.lister.ListRepositories(executionContext, options.Listing)
	if fetchError != nil {
		return UpdateResult{}, FetchError{Cause: fetchError}
	}
	service.logger.Info(fetchedMessageConstant, zap.Int(logFieldRepositoriesConstant, len(records)))

	body := markdown.NewFormatter(options.DescriptionLimit).Render(repository.ListItems(records))
	result := UpdateResult{RepositoryCount: len(records), Body: body}

	if options.DryRun {
		service.logger.Info(dryRunMessageConstant, zap.String(logFieldSectionConstant, options.Section.Name()))
		result.Elapsed = service.finish(startTime)
		return result, nil
	}

	dispatchError := service.dispatch(body, records, options)
	result.Elapsed = service.finish(startTime)
	return result, dispatchError
}

func (service *Service) validateOptions(options UpdateOptions) error {
	if sectionError := options.Section.Validate(); sectionError != nil {
		return sectionError
	}
	if options.DryRun {
		return nil
	}
	if len(options.MarkdownPath) == 0 {
		return ErrMarkdownPathRequired
	}
	if len(options.JSONPath) == 0 {
		return ErrJSONPathRequired
	}
	return nil
}

// dispatch runs both writers and waits for both to finish.
func (service *Service) dispatch(body string, records []repository.Record, options UpdateOptions) error {
	var markdownError, artifactError error
	var dispatchGroup errgroup.Group

	dispatchGroup.Go(func() error {
		markdownError = service.updateMarkdown(body, options)
		return markdownError
	})
	dispatchGroup.Go(func() error {
		artifactError = service.writeArtifact(records, options)
		return artifactError
	})

	if dispatchGroup.Wait() == nil {
		return nil
	}

	combinedError := multierr.Combine(markdownError, artifactError)
	service.logger.Error(branchFailedMessageConstant, zap.Int(logFieldFailuresConstant, len(multierr.Errors(combinedError))), zap.Error(combinedError))
	return combinedError
}

func (service *Service) updateMarkdown(body string, options UpdateOptions) error {
	if replaceError := service.updater.Replace(body, options.Section, options.MarkdownPath); replaceError != nil {
		return MarkdownUpdateError{Path: options.MarkdownPath, Cause: replaceError}
	}
	service.logger.Info(markdownUpdatedMessageConstant,
		zap.String(logFieldPathConstant, options.MarkdownPath),
		zap.String(logFieldSectionConstant, options.Section.Name()),
	)
	return nil
}

func (service *Service) writeArtifact(records []repository.Record, options UpdateOptions) error {
	if writeError := service.writer.Write(options.JSONPath, records); writeError != nil {
		return ArtifactWriteError{Path: options.JSONPath, Cause: writeError}
	}
	service.logger.Info(artifactWrittenMessageConstant,
		zap.String(logFieldPathConstant, options.JSONPath),
		zap.Int(logFieldRepositoriesConstant, len(records)),
	)
	return nil
}

func (service *Service) finish(startTime time.Time) time.Duration {
	elapsed := service.clock().Sub(startTime)
	service.logger.Info(finishedMessageConstant, zap.Duration(logFieldElapsedConstant, elapsed))
	return elapsed
}

func describeOwner(owner string) string {
	if len(owner) == 0 {
		return authenticatedUserOwnerLabelConstant
	}
	return owner
}
