package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/supplyq/supplyq/internal/store"
)

type columnSpec struct {
	CSVHeader string
	Name      string
	Type      string
}

// datasetColumns maps the raw DataCo CSV headers to the column names and
// types of supply_chain_orders, in table-definition order. The type names
// are accepted by all three supported drivers.
var datasetColumns = []columnSpec{
	{"Type", "type", "TEXT"},
	{"Days for shipping (real)", "days_for_shipping_real", "INTEGER"},
	{"Days for shipment (scheduled)", "days_for_shipment_scheduled", "INTEGER"},
	{"Benefit per order", "benefit_per_order", "DOUBLE PRECISION"},
	{"Sales per customer", "sales_per_customer", "DOUBLE PRECISION"},
	{"Delivery Status", "delivery_status", "TEXT"},
	{"Late_delivery_risk", "late_delivery_risk", "INTEGER"},
	{"Category Id", "category_id", "INTEGER"},
	{"Category Name", "category_name", "TEXT"},
	{"Customer City", "customer_city", "TEXT"},
	{"Customer Country", "customer_country", "TEXT"},
	{"Customer Email", "customer_email", "TEXT"},
	{"Customer Fname", "customer_fname", "TEXT"},
	{"Customer Id", "customer_id", "TEXT"},
	{"Customer Lname", "customer_lname", "TEXT"},
	{"Customer Password", "customer_password", "TEXT"},
	{"Customer Segment", "customer_segment", "TEXT"},
	{"Customer State", "customer_state", "TEXT"},
	{"Customer Street", "customer_street", "TEXT"},
	{"Customer Zipcode", "customer_zipcode", "TEXT"},
	{"Department Id", "department_id", "INTEGER"},
	{"Department Name", "department_name", "TEXT"},
	{"Latitude", "latitude", "DOUBLE PRECISION"},
	{"Longitude", "longitude", "DOUBLE PRECISION"},
	{"Market", "market", "TEXT"},
	{"Order City", "order_city", "TEXT"},
	{"Order Country", "order_country", "TEXT"},
	{"Order Customer Id", "order_customer_id", "TEXT"},
	{"order date (DateOrders)", "order_date", "DATE"},
	{"Order Id", "order_id", "TEXT"},
	{"Order Item Cardprod Id", "order_item_cardprod_id", "INTEGER"},
	{"Order Item Discount", "order_item_discount", "DOUBLE PRECISION"},
	{"Order Item Discount Rate", "order_item_discount_rate", "DOUBLE PRECISION"},
	{"Order Item Id", "order_item_id", "INTEGER"},
	{"Order Item Product Price", "order_item_product_price", "DOUBLE PRECISION"},
	{"Order Item Profit Ratio", "order_item_profit_ratio", "DOUBLE PRECISION"},
	{"Order Item Quantity", "order_item_quantity", "INTEGER"},
	{"Sales", "sales", "DOUBLE PRECISION"},
	{"Order Item Total", "order_item_total", "DOUBLE PRECISION"},
	{"Order Profit Per Order", "order_profit_per_order", "DOUBLE PRECISION"},
	{"Order Region", "order_region", "TEXT"},
	{"Order State", "order_state", "TEXT"},
	{"Order Status", "order_status", "TEXT"},
	{"Order Zipcode", "order_zipcode", "TEXT"},
	{"Product Card Id", "product_card_id", "INTEGER"},
	{"Product Category Id", "product_category_id", "INTEGER"},
	{"Product Description", "product_description", "TEXT"},
	{"Product Image", "product_image", "TEXT"},
	{"Product Name", "product_name", "TEXT"},
	{"Product Price", "product_price", "DOUBLE PRECISION"},
	{"Product Status", "product_status", "INTEGER"},
	{"shipping date (DateOrders)", "shipping_date", "DATE"},
	{"Shipping Mode", "shipping_mode", "TEXT"},
}

func columnByHeader(header string) (columnSpec, bool) {
	for _, spec := range datasetColumns {
		if spec.CSVHeader == header {
			return spec, true
		}
	}
	return columnSpec{}, false
}

// CreateTable bootstraps the dataset table if it does not exist yet.
func CreateTable(ctx context.Context, db *sql.DB) error {
	defs := make([]string, 0, len(datasetColumns))
	for _, spec := range datasetColumns {
		defs = append(defs, fmt.Sprintf("%s %s", spec.Name, spec.Type))
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)", store.TableName, strings.Join(defs, ",\n  "))
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", store.TableName, err)
	}
	return nil
}
