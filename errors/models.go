package errors

const (
	CurrentPageInvalidErrorCode = 200_001
	ObjectIDNotFoundErrorCode   = 200_002
	DuplicatedObjectIDErrorCode = 200_003
	MatchTypeInvalidErrorCode   = 200_004
	DataAlreadyInUsedErrorCode  = 200_005
	PageSizeInvalidErrorCode    = 200_006
	SortKeyInvalidErrorCode     = 200_007
	EntityNotFoundErrorCode     = 200_008
)

// CurrentPageInvalidError indicates user gives invalid current page when searching items
var CurrentPageInvalidError = new(CurrentPageInvalidErrorCode, "CurrentPageInvalid", "Current page can be only positive integer")

// ObjectIDNotFoundError indicates user gives invalid item ID
var ObjectIDNotFoundError = new(ObjectIDNotFoundErrorCode, "ObjectIDNotFound", "Item with ID %v is not exist")

// DuplicatedObjectIDError indicates user create item using item ID that already in used
var DuplicatedObjectIDError = new(DuplicatedObjectIDErrorCode, "DuplicatedObjectID", "item ID %v is already used")

// MatchTypeInvalidError indicates user give invalid or unsupported match type when user search items
var MatchTypeInvalidError = new(MatchTypeInvalidErrorCode, "MatchTypeInvalid", "Match type %d is invalid or unsupported")

// DataAlreadyInUsedError indicates a unique field of the item collides with an existing item
var DataAlreadyInUsedError = new(DataAlreadyInUsedErrorCode, "DataAlreadyInUsed", "Data is already in used")

var PageSizeInvalidError = new(PageSizeInvalidErrorCode, "PageSizeInvalid", "Page size must be between 1 and %d")

var SortKeyInvalidError = new(SortKeyInvalidErrorCode, "SortKeyInvalid", "Sort key %q is not sortable")

// EntityNotFoundError indicates the requested screen or API entity is not registered
var EntityNotFoundError = new(EntityNotFoundErrorCode, "EntityNotFound", "Entity %q is not exist")
