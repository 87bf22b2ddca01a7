package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventLoadRequested      EventType = "LoadRequested"
	EventDatasetLoadStarted EventType = "DatasetLoadStarted"
	EventDatasetLoaded      EventType = "DatasetLoaded"
	EventDatasetLoadFailed  EventType = "DatasetLoadFailed"
	EventManifestChanged    EventType = "ManifestChanged"
	EventLinkCopied         EventType = "LinkCopied"
	EventError              EventType = "Error"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LoadRequestedEvent asks the catalog to (re)load the manifest
type LoadRequestedEvent struct {
	Reason string // "startup", "manual", "watch"
}

func (e LoadRequestedEvent) Type() EventType { return EventLoadRequested }

// DatasetLoadStartedEvent is emitted when a manifest load begins
type DatasetLoadStartedEvent struct {
	Generation uint64
	Origin     string
}

func (e DatasetLoadStartedEvent) Type() EventType { return EventDatasetLoadStarted }

// DatasetLoadedEvent carries a freshly loaded dataset
type DatasetLoadedEvent struct {
	Dataset *Dataset
	Dropped int    // records rejected during normalisation
	Request uint64 // id of the load request that produced Dataset
}

func (e DatasetLoadedEvent) Type() EventType { return EventDatasetLoaded }

// DatasetLoadFailedEvent is emitted when the manifest cannot be fetched or parsed
type DatasetLoadFailedEvent struct {
	Generation uint64 // id of the failed load request
	Origin     string
	Err        error
}

func (e DatasetLoadFailedEvent) Type() EventType { return EventDatasetLoadFailed }

// ManifestChangedEvent is emitted by the watcher when the manifest file changes
type ManifestChangedEvent struct {
	Path string
}

func (e ManifestChangedEvent) Type() EventType { return EventManifestChanged }

// LinkCopiedEvent is emitted after a link was placed on the clipboard
type LinkCopiedEvent struct {
	Slug string
	Link string
}

func (e LinkCopiedEvent) Type() EventType { return EventLinkCopied }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
