package repos

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"lascala/internal/log"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Brands     []struct{ ID, Name string }
	Categories []struct{ ID, Name string }
	Sources    []struct {
		ID         string `yaml:"id"`
		Name       string `yaml:"name"`
		SourceType string `yaml:"source_type"`
		Priority   int    `yaml:"priority"`
	}
	Users []struct {
		ID          string `yaml:"id"`
		Email       string `yaml:"email"`
		DisplayName string `yaml:"display_name"`
		Role        string `yaml:"role"`
		Password    string `yaml:"password"`
	}
	Products []seedProduct
	Listings []struct {
		ID        string  `yaml:"id"`
		Product   string  `yaml:"product"`
		Seller    string  `yaml:"seller"`
		Size      string  `yaml:"size"`
		Condition string  `yaml:"condition"`
		Price     float64 `yaml:"price"`
		Status    string  `yaml:"status"`
		Auth      string  `yaml:"authentication_status"`
	}
	Closet []struct {
		ID            string   `yaml:"id"`
		User          string   `yaml:"user"`
		Product       string   `yaml:"product"`
		Size          string   `yaml:"size"`
		Condition     string   `yaml:"condition"`
		PurchasePrice *float64 `yaml:"purchase_price"`
		IsPublic      bool     `yaml:"is_public"`
		OpenToOffers  bool     `yaml:"open_to_offers"`
	}
	WTB []struct {
		ID               string  `yaml:"id"`
		User             string  `yaml:"user"`
		Product          string  `yaml:"product"`
		Size             string  `yaml:"size"`
		ConditionMinimum string  `yaml:"condition_minimum"`
		MaxPrice         float64 `yaml:"max_price"`
	} `yaml:"wtb"`
}

type seedProduct struct {
	ID               string   `yaml:"id"`
	SKU              string   `yaml:"sku"`
	ManufacturerSKU  string   `yaml:"manufacturer_sku"`
	Name             string   `yaml:"name"`
	Brand            string   `yaml:"brand"`
	Category         string   `yaml:"category"`
	Gender           string   `yaml:"gender"`
	Color            string   `yaml:"color"`
	Description      string   `yaml:"description"`
	Materials        string   `yaml:"materials"`
	OriginCountry    string   `yaml:"origin_country"`
	CareInstructions string   `yaml:"care_instructions"`
	RetailPrice      *float64 `yaml:"retail_price"`
	CurrentPrice     *float64 `yaml:"current_price"`
	Sizes            []string `yaml:"sizes"`
	Images           []struct {
		URL      string `yaml:"url"`
		Alt      string `yaml:"alt"`
		Position int    `yaml:"position"`
		Primary  bool   `yaml:"primary"`
	} `yaml:"images"`
	Inventory []struct {
		Source string `yaml:"source"`
		Size   string `yaml:"size"`
		Qty    int    `yaml:"qty"`
	} `yaml:"inventory"`
}

// SeedIfEmpty loads the embedded demo catalog when no products exist yet.
func SeedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return Seed(db)
}

// Seed inserts the embedded demo catalog in one transaction.
func Seed(db *sqlx.DB) error {
	var sf seedFile
	if err := yaml.Unmarshal(seedYAML, &sf); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	exec := func(q string, args ...any) {
		if err != nil {
			return
		}
		_, err = tx.Exec(tx.Rebind(q), args...)
	}
	ts := now()

	for _, b := range sf.Brands {
		exec(`INSERT INTO brands(id,name) VALUES(?,?)`, b.ID, b.Name)
	}
	for _, c := range sf.Categories {
		exec(`INSERT INTO categories(id,name) VALUES(?,?)`, c.ID, c.Name)
	}
	for _, s := range sf.Sources {
		exec(`INSERT INTO inventory_sources(id,name,source_type,priority) VALUES(?,?,?,?)`,
			s.ID, s.Name, s.SourceType, s.Priority)
	}
	for _, u := range sf.Users {
		hash, herr := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if herr != nil {
			return herr
		}
		exec(`INSERT INTO users(id,email,display_name,password_hash,role,created_at) VALUES(?,?,?,?,?,?)`,
			u.ID, u.Email, u.DisplayName, string(hash), u.Role, ts)
	}
	for _, p := range sf.Products {
		gender := p.Gender
		if gender == "" {
			gender = "U"
		}
		exec(`INSERT INTO products(id,sku,manufacturer_sku,name,brand_id,category_id,gender,color,description,
		        materials,origin_country,care_instructions,retail_price,current_price,created_at)
		      VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			p.ID, p.SKU, p.ManufacturerSKU, p.Name, p.Brand, p.Category, gender, p.Color, p.Description,
			p.Materials, p.OriginCountry, p.CareInstructions, nullFloat(p.RetailPrice), nullFloat(p.CurrentPrice), ts)
		for i, s := range p.Sizes {
			exec(`INSERT INTO product_sizes(id,product_id,size,position) VALUES(?,?,?,?)`, uuid.NewString(), p.ID, s, i)
		}
		for _, im := range p.Images {
			exec(`INSERT INTO product_images(id,product_id,url,alt_text,position,is_primary) VALUES(?,?,?,?,?,?)`,
				uuid.NewString(), p.ID, im.URL, im.Alt, im.Position, im.Primary)
		}
		for _, inv := range p.Inventory {
			exec(`INSERT INTO inventory(id,product_id,source_id,size,quantity,updated_at) VALUES(?,?,?,?,?,?)`,
				uuid.NewString(), p.ID, inv.Source, inv.Size, inv.Qty, ts)
		}
	}
	for _, l := range sf.Listings {
		exec(`INSERT INTO listings(id,product_id,seller_id,size,condition,price,status,authentication_status,created_at)
		      VALUES(?,?,?,?,?,?,?,?,?)`,
			l.ID, l.Product, l.Seller, l.Size, l.Condition, l.Price, l.Status, l.Auth, ts)
	}
	for _, c := range sf.Closet {
		exec(`INSERT INTO closet_items(id,user_id,product_id,size,condition,purchase_price,is_public,open_to_offers,created_at)
		      VALUES(?,?,?,?,?,?,?,?,?)`,
			c.ID, c.User, c.Product, c.Size, c.Condition, nullFloat(c.PurchasePrice), c.IsPublic, c.OpenToOffers, ts)
	}
	for _, w := range sf.WTB {
		exec(`INSERT INTO wtb_offers(id,user_id,product_id,size,condition_minimum,max_price,status,created_at)
		      VALUES(?,?,?,?,?,?,'active',?)`,
			w.ID, w.User, w.Product, w.Size, w.ConditionMinimum, w.MaxPrice, ts)
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.L().Info("seed.loaded")
	return nil
}
