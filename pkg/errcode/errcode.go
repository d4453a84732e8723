package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Versions registry errors
	VersionsConfigError
	UnknownChecklistError
	UnknownVersionError
	VersionOrderError

	// Loader errors
	LoaderSourceError
	LoaderFetchError
	LoaderArchiveError
	LoaderEncodingError
	LoaderHeaderError
	LoaderVocabularyError
	LoaderSFGAError

	// Resolver errors
	ResolverDuplicateIDError
	ResolverSelfMatchError
	ResolverThresholdError

	// Comparison errors
	CompareParseError
	ChainLengthError
	SummaryInputError

	// Trend errors
	TrendInputError
	PlotError
	MetricsError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	ExportSchemaError
	ExportCopyError
)
