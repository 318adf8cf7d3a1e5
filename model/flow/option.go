package flow

import "go.alis.build/utils"

// Option configures a flow created with New
type Option func(f *Flow)

// WithDescription sets the human-readable description
func WithDescription(description string) Option {
	return func(f *Flow) {
		f.Description = description
	}
}

// WithModel sets the model described by the flow
func WithModel(model interface{}) Option {
	return func(f *Flow) {
		f.Model = model
	}
}

// WithParameters sets parameter defaults and their meta-info; both must share the same keys
func WithParameters(parameters *utils.OrderedMap[string, string], metaInfo *utils.OrderedMap[string, *ParameterMeta]) Option {
	return func(f *Flow) {
		if parameters == nil {
			f.invalid = append(f.invalid, "parameters")
		}
		if metaInfo == nil {
			f.invalid = append(f.invalid, "parameters_meta_info")
		}
		f.Parameters = parameters
		f.ParametersMetaInfo = metaInfo
	}
}

// WithComponents sets the named sub-flows
func WithComponents(components *utils.OrderedMap[string, *Flow]) Option {
	return func(f *Flow) {
		if components == nil {
			f.invalid = append(f.invalid, "components")
		}
		f.Components = components
	}
}

// WithTags sets the flow tags
func WithTags(tags ...string) Option {
	return func(f *Flow) {
		f.Tags = append([]string{}, tags...)
	}
}

// WithLanguage sets the natural language of the description
func WithLanguage(language string) Option {
	return func(f *Flow) {
		f.Language = &language
	}
}

// WithDependencies sets the dependency pins
func WithDependencies(dependencies string) Option {
	return func(f *Flow) {
		f.Dependencies = &dependencies
	}
}

// WithID sets the registry assigned id
func WithID(id int) Option {
	return func(f *Flow) {
		f.ID = &id
	}
}

// WithUploader sets the registry uploader
func WithUploader(uploader string) Option {
	return func(f *Flow) {
		f.Uploader = &uploader
	}
}

// WithUploadDate sets the registry upload date
func WithUploadDate(uploadDate string) Option {
	return func(f *Flow) {
		f.UploadDate = &uploadDate
	}
}

// WithVersion sets the registry version
func WithVersion(version string) Option {
	return func(f *Flow) {
		f.Version = &version
	}
}

// WithBinary sets the legacy binary references
func WithBinary(URL, format, md5 string) Option {
	return func(f *Flow) {
		f.BinaryURL = &URL
		f.BinaryFormat = &format
		f.BinaryMD5 = &md5
	}
}

// WithNameResolver overrides how GetName resolves the flow name
func WithNameResolver(resolver func(*Flow) string) Option {
	return func(f *Flow) {
		f.nameResolver = resolver
	}
}
