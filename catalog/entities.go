package catalog

import (
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/table"
	"go.mongodb.org/mongo-driver/bson"
)

var statusOptions = []Option{
	{Value: "1", Label: "Active"},
	{Value: "0", Label: "Inactive"},
}

var Products = Entity[objects.Product]{
	Meta: Meta{
		Name:       "products",
		Noun:       "product",
		Title:      "Products",
		BulkDelete: true,
		Fields: []Field{
			{Name: "ProductName", Label: "Name", Input: TextInput, Required: true},
			{Name: "CategoryID", Label: "Category ID", Input: NumberInput, Required: true},
			{Name: "Image", Label: "Image URL", Input: URLInput},
			{Name: "Description", Label: "Description", Input: TextAreaInput},
			{Name: "ProductPrice", Label: "Price", Input: NumberInput, Required: true},
			{Name: "DiscountPercentage", Label: "Discount (%)", Input: NumberInput},
			{Name: "SellingPrice", Label: "Selling price", Input: NumberInput, Help: "Left empty, it is derived from the price and discount"},
			{Name: "Stock", Label: "Stock", Input: NumberInput},
			{Name: "Status", Label: "Status", Input: SelectInput, Options: statusOptions},
		},
	},
	Columns: []table.Column[objects.Product]{
		{ID: "Image", Header: "Image", Kind: table.ImageKind, Accessor: func(p objects.Product) any { return p.Image }},
		{ID: "ProductName", Header: "Name", Sortable: true, Accessor: func(p objects.Product) any { return p.ProductName }},
		{ID: "CategoryName", Header: "Category", Sortable: true, Accessor: func(p objects.Product) any { return p.CategoryName }},
		{ID: "SellingPrice", Header: "Price", Kind: table.MoneyKind, Sortable: true, Accessor: func(p objects.Product) any { return p.SellingPrice }},
		{ID: "Stock", Header: "Stock", Sortable: true, Accessor: func(p objects.Product) any { return p.Stock }},
		{ID: "Status", Header: "Status", Kind: table.StatusKind, Sortable: true, Accessor: func(p objects.Product) any { return p.Status }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath:   "paginate-product",
		ItemPath:   "product",
		StatusPath: "paginate-product",
		Shape:      backend.Shape{Items: "products", TotalPages: "totalPages", TotalCount: "totalProducts"},
	},
	Collection: models.CollectionOptions{
		Name:         "products",
		ItemIDKey:    "ProductID",
		SearchFields: []string{"ProductName", "CategoryName"},
		SortFields:   []string{"ProductName", "CategoryName", "SellingPrice", "Stock", "Status"},
		StatusKey:    "Status",
		Required:     []string{"ProductName"},
	},
}

var categoryColumns = []table.Column[objects.Category]{
	{ID: "Image", Header: "Image", Kind: table.ImageKind, Accessor: func(c objects.Category) any { return c.Image }},
	{ID: "CategoryName", Header: "Name", Sortable: true, Accessor: func(c objects.Category) any { return c.CategoryName }},
	{ID: "Slug", Header: "Slug", Accessor: func(c objects.Category) any { return c.Slug }},
	{ID: "Status", Header: "Status", Kind: table.StatusKind, Sortable: true, Accessor: func(c objects.Category) any { return c.Status }},
	{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
}

var Categories = Entity[objects.Category]{
	Meta: Meta{
		Name:       "categories",
		Noun:       "category",
		Title:      "Categories",
		BulkDelete: true,
		Fields: []Field{
			{Name: "CategoryName", Label: "Name", Input: TextInput, Required: true},
			{Name: "Slug", Label: "Slug", Input: TextInput, Help: "Left empty, it is derived from the name"},
			{Name: "Image", Label: "Image URL", Input: URLInput},
			{Name: "Status", Label: "Status", Input: SelectInput, Options: statusOptions},
		},
	},
	Columns: categoryColumns,
	Endpoint: backend.Endpoint{
		ListPath:   "category/pagination",
		ItemPath:   "category",
		UpdatePath: "category/update",
		StatusPath: "category/update/status",
		Shape:      backend.Shape{Items: "categories", TotalPages: "totalPages"},
	},
	Collection: models.CollectionOptions{
		Name:         "categories",
		ItemIDKey:    "CategoryID",
		SearchFields: []string{"CategoryName", "Slug"},
		SortFields:   []string{"CategoryName", "Status"},
		StatusKey:    "Status",
		Required:     []string{"CategoryName"},
		Scope:        bson.D{{Key: "ParentCategoryID", Value: bson.M{"$in": bson.A{nil, 0}}}},
	},
}

var SubCategories = Entity[objects.Category]{
	Meta: Meta{
		Name:       "sub-categories",
		Noun:       "sub-category",
		Title:      "Sub-categories",
		BulkDelete: true,
		Fields: []Field{
			{Name: "CategoryName", Label: "Name", Input: TextInput, Required: true},
			{Name: "ParentCategoryID", Label: "Parent category ID", Input: NumberInput, Required: true},
			{Name: "Slug", Label: "Slug", Input: TextInput, Help: "Left empty, it is derived from the name"},
			{Name: "Image", Label: "Image URL", Input: URLInput},
			{Name: "Status", Label: "Status", Input: SelectInput, Options: statusOptions},
		},
	},
	Columns: append([]table.Column[objects.Category]{
		{ID: "ParentCategoryName", Header: "Parent", Sortable: true, Accessor: func(c objects.Category) any { return c.ParentCategoryName }},
	}, categoryColumns...),
	Endpoint: backend.Endpoint{
		ListPath:   "category",
		ItemPath:   "category",
		UpdatePath: "category/update",
		StatusPath: "category/update/status",
		Shape:      backend.Shape{Items: "result.#(ParentCategoryID>0)#"},
	},
	Collection: models.CollectionOptions{
		Name:         "categories",
		ItemIDKey:    "CategoryID",
		SearchFields: []string{"CategoryName", "ParentCategoryName"},
		SortFields:   []string{"CategoryName", "ParentCategoryName", "Status"},
		StatusKey:    "Status",
		Required:     []string{"CategoryName"},
		Scope:        bson.D{{Key: "ParentCategoryID", Value: bson.M{"$gt": 0}}},
	},
}

var Attributes = Entity[objects.Attribute]{
	Meta: Meta{
		Name:  "attributes",
		Noun:  "attribute",
		Title: "Attributes",
		Fields: []Field{
			{Name: "name", Label: "Name", Input: TextInput, Required: true},
			{Name: "values", Label: "Values", Input: TextInput, Help: "Separate values with commas"},
		},
	},
	Columns: []table.Column[objects.Attribute]{
		{ID: "name", Header: "Name", Sortable: true, Accessor: func(a objects.Attribute) any { return a.Name }},
		{ID: "values", Header: "Values", Accessor: func(a objects.Attribute) any { return len(a.Values) }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath: "attribute",
		ItemPath: "attribute",
		Shape:    backend.Shape{Items: "result"},
	},
	Collection: models.CollectionOptions{
		Name:         "attributes",
		ItemIDKey:    "id",
		SearchFields: []string{"name", "values"},
		SortFields:   []string{"name"},
		Required:     []string{"name"},
	},
}

var Blogs = Entity[objects.Blog]{
	Meta: Meta{
		Name:       "blogs",
		Noun:       "blog",
		Title:      "Blogs",
		BulkDelete: true,
		Fields: []Field{
			{Name: "title", Label: "Title", Input: TextInput, Required: true},
			{Name: "slug", Label: "Slug", Input: TextInput, Help: "Left empty, it is derived from the title"},
			{Name: "image", Label: "Image URL", Input: URLInput},
			{Name: "content", Label: "Content", Input: TextAreaInput, Required: true},
			{Name: "Status", Label: "Status", Input: SelectInput, Options: statusOptions},
		},
	},
	Columns: []table.Column[objects.Blog]{
		{ID: "image", Header: "Image", Kind: table.ImageKind, Accessor: func(b objects.Blog) any { return b.Image }},
		{ID: "title", Header: "Title", Sortable: true, Accessor: func(b objects.Blog) any { return b.Title }},
		{ID: "created_at", Header: "Created", Kind: table.DateKind, Sortable: true, Accessor: func(b objects.Blog) any { return b.CreatedAt }},
		{ID: "Status", Header: "Status", Kind: table.StatusKind, Sortable: true, Accessor: func(b objects.Blog) any { return b.Status }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath:   "blog",
		ItemPath:   "blog",
		StatusPath: "blog/status",
		Shape:      backend.Shape{Items: "blogs", TotalCount: "totalBlogs"},
	},
	Collection: models.CollectionOptions{
		Name:         "blogs",
		ItemIDKey:    "id",
		SearchFields: []string{"title", "slug"},
		SortFields:   []string{"title", "created_at", "Status"},
		StatusKey:    "Status",
		Required:     []string{"title"},
	},
}

var Banners = Entity[objects.Banner]{
	Meta: Meta{
		Name:  "banners",
		Noun:  "banner",
		Title: "Banners",
		Fields: []Field{
			{Name: "BannerTitle", Label: "Title", Input: TextInput, Required: true},
			{Name: "Image", Label: "Image URL", Input: URLInput},
			{Name: "Link", Label: "Link", Input: URLInput},
			{Name: "Status", Label: "Status", Input: SelectInput, Options: statusOptions},
		},
	},
	Columns: []table.Column[objects.Banner]{
		{ID: "Image", Header: "Image", Kind: table.ImageKind, Accessor: func(b objects.Banner) any { return b.Image }},
		{ID: "BannerTitle", Header: "Title", Sortable: true, Accessor: func(b objects.Banner) any { return b.BannerTitle }},
		{ID: "Status", Header: "Status", Kind: table.StatusKind, Sortable: true, Accessor: func(b objects.Banner) any { return b.Status }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath:   "banner",
		ItemPath:   "banner",
		UpdatePath: "banner/update",
		StatusPath: "banner/status",
		ItemResult: "result",
		Shape:      backend.Shape{Items: "result"},
	},
	Collection: models.CollectionOptions{
		Name:         "banners",
		ItemIDKey:    "BannerId",
		SearchFields: []string{"BannerTitle"},
		SortFields:   []string{"BannerTitle", "Status"},
		StatusKey:    "Status",
		Required:     []string{"BannerTitle"},
	},
}

var FAQs = Entity[objects.FAQ]{
	Meta: Meta{
		Name:       "faqs",
		Noun:       "FAQ",
		Title:      "FAQs",
		BulkDelete: true,
		Fields: []Field{
			{Name: "question", Label: "Question", Input: TextInput, Required: true},
			{Name: "answer", Label: "Answer", Input: TextAreaInput, Required: true},
		},
	},
	Columns: []table.Column[objects.FAQ]{
		{ID: "question", Header: "Question", Sortable: true, Accessor: func(f objects.FAQ) any { return f.Question }},
		{ID: "answer", Header: "Answer", Accessor: func(f objects.FAQ) any { return f.Answer }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath: "faq",
		ItemPath: "faq",
		Shape:    backend.Shape{Items: "result"},
	},
	Collection: models.CollectionOptions{
		Name:         "faqs",
		ItemIDKey:    "id",
		SearchFields: []string{"question", "answer"},
		SortFields:   []string{"question"},
		Required:     []string{"question"},
	},
}

var Newsletters = Entity[objects.Newsletter]{
	Meta: Meta{
		Name:       "newsletters",
		Noun:       "subscriber",
		Title:      "Newsletter",
		BulkDelete: true,
	},
	Columns: []table.Column[objects.Newsletter]{
		{ID: "email", Header: "Email", Sortable: true, Accessor: func(n objects.Newsletter) any { return n.Email }},
		{ID: "created_at", Header: "Subscribed", Kind: table.DateKind, Sortable: true, Accessor: func(n objects.Newsletter) any { return n.CreatedAt }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath: "newsletter",
		ItemPath: "newsletter",
		ReadOnly: true,
		Shape:    backend.Shape{Items: "result"},
	},
	Collection: models.CollectionOptions{
		Name:         "newsletters",
		ItemIDKey:    "id",
		SearchFields: []string{"email"},
		SortFields:   []string{"email", "created_at"},
		Required:     []string{"email"},
	},
}

var Contacts = Entity[objects.Contact]{
	Meta: Meta{
		Name:       "contacts",
		Noun:       "contact",
		Title:      "Contacts",
		BulkDelete: true,
	},
	Columns: []table.Column[objects.Contact]{
		{ID: "FullName", Header: "Name", Sortable: true, Accessor: func(c objects.Contact) any { return c.FullName }},
		{ID: "Email", Header: "Email", Sortable: true, Accessor: func(c objects.Contact) any { return c.Email }},
		{ID: "Phone", Header: "Phone", Accessor: func(c objects.Contact) any { return c.Phone }},
		{ID: "Message", Header: "Message", Hidden: true, Accessor: func(c objects.Contact) any { return c.Message }},
		{ID: "CreatedAt", Header: "Received", Kind: table.DateKind, Sortable: true, Accessor: func(c objects.Contact) any { return c.CreatedAt }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath: "contact",
		ItemPath: "contact",
		ReadOnly: true,
		Shape:    backend.Shape{Items: "data", TotalCount: "pagination.totalContacts"},
	},
	Collection: models.CollectionOptions{
		Name:         "contacts",
		ItemIDKey:    "ContactID",
		SearchFields: []string{"FullName", "Email", "Phone", "Message"},
		SortFields:   []string{"FullName", "Email", "CreatedAt"},
	},
}

var Reviews = Entity[objects.Review]{
	Meta: Meta{
		Name:       "reviews",
		Noun:       "review",
		Title:      "Reviews",
		BulkDelete: true,
		Tabs: &Tabs{
			Key: "status",
			Options: []Option{
				{Value: "", Label: "All"},
				{Value: "1", Label: "Approved"},
				{Value: "0", Label: "Pending"},
			},
		},
	},
	Columns: []table.Column[objects.Review]{
		{ID: "ProductName", Header: "Product", Sortable: true, Accessor: func(r objects.Review) any { return r.ProductName }},
		{ID: "userName", Header: "Customer", Sortable: true, Accessor: func(r objects.Review) any { return r.UserName }},
		{ID: "rating", Header: "Rating", Sortable: true, Accessor: func(r objects.Review) any { return r.Rating }},
		{ID: "review_text", Header: "Review", Accessor: func(r objects.Review) any { return r.ReviewText }},
		{ID: "review_date", Header: "Date", Kind: table.DateKind, Sortable: true, Accessor: func(r objects.Review) any { return r.ReviewDate }},
		{ID: "status", Header: "Status", Kind: table.StatusKind, Accessor: func(r objects.Review) any { return r.Status }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath:      "review/search",
		ItemPath:      "review",
		StatusPath:    "review",
		PageSizeParam: "limit",
		FilterParams:  map[string]string{"status": "tab"},
		Shape:         backend.Shape{Items: "result", TotalPages: "totalPages"},
	},
	Collection: models.CollectionOptions{
		Name:         "reviews",
		ItemIDKey:    "id",
		SearchFields: []string{"ProductName", "userName", "emailAddress", "review_text"},
		SortFields:   []string{"ProductName", "userName", "rating", "review_date"},
		StatusKey:    "status",
	},
}

var Orders = Entity[objects.Order]{
	Meta: Meta{
		Name:  "orders",
		Noun:  "order",
		Title: "Orders",
		Tabs: &Tabs{
			Key: "OrderStatus",
			Options: []Option{
				{Value: "pending", Label: "Pending"},
				{Value: "processing", Label: "Processing"},
				{Value: "shipped", Label: "Shipped"},
				{Value: "delivered", Label: "Delivered"},
				{Value: "cancelled", Label: "Cancelled"},
			},
		},
	},
	Columns: []table.Column[objects.Order]{
		{ID: "OrderID", Header: "Order", Sortable: true, Accessor: func(o objects.Order) any { return o.OrderID }},
		{ID: "CustomerName", Header: "Customer", Sortable: true, Accessor: func(o objects.Order) any { return o.CustomerName }},
		{ID: "Email", Header: "Email", Accessor: func(o objects.Order) any { return o.Email }},
		{ID: "Total", Header: "Total", Kind: table.MoneyKind, Sortable: true, Accessor: func(o objects.Order) any { return o.Total }},
		{ID: "CreatedAt", Header: "Placed", Kind: table.DateKind, Sortable: true, Accessor: func(o objects.Order) any { return o.CreatedAt }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath:   "order",
		ItemPath:   "order",
		ReadOnly:   true,
		PathFilter: "OrderStatus",
		Shape:      backend.Shape{Items: "result"},
	},
	Collection: models.CollectionOptions{
		Name:         "orders",
		ItemIDKey:    "OrderID",
		SearchFields: []string{"CustomerName", "Email", "OrderStatus"},
		SortFields:   []string{"OrderID", "CustomerName", "Total", "CreatedAt"},
	},
}

var Users = Entity[objects.User]{
	Meta: Meta{
		Name:  "users",
		Noun:  "user",
		Title: "Users",
		Tabs: &Tabs{
			Key: "status",
			Options: []Option{
				{Value: "1", Label: "Active"},
				{Value: "0", Label: "Incomplete"},
				{Value: "2", Label: "Blocked"},
			},
		},
	},
	Columns: []table.Column[objects.User]{
		{ID: "name", Header: "Name", Sortable: true, Accessor: func(u objects.User) any { return u.Name }},
		{ID: "email", Header: "Email", Sortable: true, Accessor: func(u objects.User) any { return u.Email }},
		{ID: "created_at", Header: "Joined", Kind: table.DateKind, Sortable: true, Accessor: func(u objects.User) any { return u.CreatedAt }},
		{ID: "actions", Header: "Actions", Kind: table.ActionsKind},
	},
	Endpoint: backend.Endpoint{
		ListPath:      "user",
		ItemPath:      "user",
		PageSizeParam: "limit",
		Shape:         backend.Shape{Items: "users", TotalCount: "totalUsers"},
	},
	Collection: models.CollectionOptions{
		Name:         "users",
		ItemIDKey:    "id",
		SearchFields: []string{"name", "email"},
		SortFields:   []string{"name", "email", "created_at"},
		Required:     []string{"email"},
	},
}
