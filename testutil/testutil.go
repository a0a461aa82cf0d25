package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/autom8ter/shinyoracle"
	"github.com/autom8ter/shinyoracle/model"
	"github.com/brianvoe/gofakeit/v6"
)

// MustDocument creates a document from the values and panics on failure
func MustDocument(values map[string]any) model.Document {
	doc, err := model.NewDocumentFrom(values)
	if err != nil {
		panic(err)
	}
	return doc
}

// NewOrderDoc creates a sales order document
func NewOrderDoc(employeeID int, customerID int, totalDue float64) model.Document {
	return MustDocument(map[string]any{
		"SalesOrderID": gofakeit.IntRange(43659, 75123),
		"EmployeeID":   employeeID,
		"CustomerID":   customerID,
		"TotalDue":     totalDue,
		"OrderDate":    gofakeit.Date().Format("2006-01-02"),
	})
}

// NewOrders creates n random sales orders
func NewOrders(n int) model.Documents {
	var docs model.Documents
	for i := 0; i < n; i++ {
		docs = append(docs, NewOrderDoc(
			gofakeit.IntRange(280, 290),
			gofakeit.IntRange(1000, 1050),
			gofakeit.Float64Range(1, 150000),
		))
	}
	return docs
}

// NewProductDoc creates a product document
func NewProductDoc(subCategoryID int, listPrice float64) model.Document {
	return MustDocument(map[string]any{
		"ProductID":     gofakeit.IntRange(1, 1000),
		"ProductName":   gofakeit.Noun(),
		"SubCategoryID": subCategoryID,
		"ListPrice":     listPrice,
		"MakeFlag":      gofakeit.IntRange(0, 1),
	})
}

// NewProducts creates n random products. Prices repeat so that sorting has ties.
func NewProducts(n int) model.Documents {
	prices := []float64{0, 9.5, 34.99, 539.99, 1431.5, 3578.27}
	var docs model.Documents
	for i := 0; i < n; i++ {
		docs = append(docs, NewProductDoc(
			gofakeit.IntRange(1, 37),
			prices[gofakeit.IntRange(0, len(prices)-1)],
		))
	}
	return docs
}

// NewEmployeeDoc creates an employee document
func NewEmployeeDoc(employeeID int, gender string, maritalStatus string) model.Document {
	return MustDocument(map[string]any{
		"EmployeeID":    employeeID,
		"FirstName":     gofakeit.FirstName(),
		"LastName":      gofakeit.LastName(),
		"Gender":        gender,
		"MaritalStatus": maritalStatus,
	})
}

// NewEmployees creates n employees with sequential ids starting at 259
func NewEmployees(n int) model.Documents {
	var docs model.Documents
	for i := 0; i < n; i++ {
		docs = append(docs, NewEmployeeDoc(
			259+i,
			gofakeit.RandomString([]string{"M", "F"}),
			gofakeit.RandomString([]string{"M", "S"}),
		))
	}
	return docs
}

// WriteCollection writes the documents as a json array to dir/file
func WriteCollection(dir string, file string, docs model.Documents) error {
	bits, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, file), bits, 0644)
}

// NewCustomers creates n customers with sequential ids starting at 1000
func NewCustomers(n int) model.Documents {
	var docs model.Documents
	for i := 0; i < n; i++ {
		docs = append(docs, MustDocument(map[string]any{
			"CustomerID":  1000 + i,
			"CompanyName": gofakeit.Company(),
			"City":        gofakeit.City(),
		}))
	}
	return docs
}

// NewVendors creates n vendors with random credit ratings between 1 and 5
func NewVendors(n int) model.Documents {
	var docs model.Documents
	for i := 0; i < n; i++ {
		docs = append(docs, MustDocument(map[string]any{
			"VendorID":     1492 + i,
			"VendorName":   gofakeit.Company(),
			"CreditRating": gofakeit.IntRange(1, 5),
			"ActiveFlag":   gofakeit.IntRange(0, 1),
		}))
	}
	return docs
}

// NewProductCategories creates the four product categories
func NewProductCategories() model.Documents {
	var docs model.Documents
	for i, name := range []string{"Bikes", "Components", "Clothing", "Accessories"} {
		docs = append(docs, MustDocument(map[string]any{
			"CategoryID":   i + 1,
			"CategoryName": name,
		}))
	}
	return docs
}

// NewProductSubcategories creates three subcategories per product category
func NewProductSubcategories() model.Documents {
	var docs model.Documents
	for i := 0; i < 12; i++ {
		docs = append(docs, MustDocument(map[string]any{
			"SubCategoryID": i + 1,
			"CategoryID":    i/3 + 1,
			"Name":          gofakeit.Noun(),
		}))
	}
	return docs
}

// NewVendorProducts creates n vendor product listings
func NewVendorProducts(n int) model.Documents {
	var docs model.Documents
	for i := 0; i < n; i++ {
		docs = append(docs, MustDocument(map[string]any{
			"ProductID":       gofakeit.IntRange(1, 60),
			"VendorID":        gofakeit.IntRange(1492, 1531),
			"StandardPrice":   gofakeit.Price(1, 500),
			"AverageLeadTime": gofakeit.IntRange(10, 120),
		}))
	}
	return docs
}

// Collections returns random collections covering every ShinyDB sample collection
func Collections() map[string]model.Documents {
	orders := NewOrders(200)
	orders = append(orders, NewOrderDoc(289, 1045, 1200.5), NewOrderDoc(289, 1045, 56000.25))
	return map[string]model.Documents{
		"orders":               orders,
		"customers":            NewCustomers(120),
		"employees":            NewEmployees(30),
		"products":             NewProducts(60),
		"productcategories":    NewProductCategories(),
		"productsubcategories": NewProductSubcategories(),
		"vendors":              NewVendors(40),
		"vendorproducts":       NewVendorProducts(80),
	}
}

// WriteCollections writes every collection to dir/<name>.json, or to its default file name
func WriteCollections(dir string, collections map[string]model.Documents) error {
	for name, docs := range collections {
		file, ok := shinyoracle.DefaultCollectionFiles[name]
		if !ok {
			file = name + ".json"
		}
		if err := WriteCollection(dir, file, docs); err != nil {
			return err
		}
	}
	return nil
}
