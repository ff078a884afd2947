package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrContentPatternInvalid    = runtimeconfig.ErrContentPatternInvalid
	ErrWorkersInvalid           = runtimeconfig.ErrWorkersInvalid
	ErrFrontMatterFormatInvalid = runtimeconfig.ErrFrontMatterFormatInvalid
	ErrFrontMatterSchemaInvalid = runtimeconfig.ErrFrontMatterSchemaInvalid
	ErrUndatedPolicyInvalid     = runtimeconfig.ErrUndatedPolicyInvalid
	ErrRenderExtensionUnknown   = runtimeconfig.ErrRenderExtensionUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	ContentConfig = runtimeconfig.ContentConfig
	ParserConfig  = runtimeconfig.ParserConfig
	SortConfig    = runtimeconfig.SortConfig
	RenderConfig  = runtimeconfig.RenderConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
