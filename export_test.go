package restkit

// Test-only exports for internal functions.
var (
	HasParamTags = hasParamTags
	HasBodyField = hasBodyField

	TypeSchema    = typeSchema
	StructSchema  = structSchema
	JSONFieldName = jsonFieldName

	ValidateConstraints = validateConstraints

	SpecPath = specPath
)
