package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/psalazarh/libreria-backend/internal/adapter/storage"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.db.QueryBuilder.Insert("users").
		Columns("id", "name", "last_name", "email", "password", "role", "created_at").
		Values(user.ID, user.Name, user.LastName, user.Email, user.Password, user.Role, user.CreatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, sq.Eq{"email": email})
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id})
}

func (r *Repository) getUser(ctx context.Context, cond sq.Eq) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "last_name", "email", "password", "role", "created_at").
		From("users").
		Where(cond)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	user := domain.User{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Name,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	statement := r.db.QueryBuilder.Insert("products").
		Columns("id", "name", "brand", "description", "price", "stock", "image", "created_at", "updated_at").
		Values(product.ID, product.Name, product.Brand, product.Description,
			product.Price, product.Stock, product.Image, product.CreatedAt, product.UpdatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "brand", "description", "price", "stock", "image", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.Image,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "brand", "description", "price", "stock", "image", "created_at", "updated_at").
		From("products").
		OrderBy("name")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Product, 0)
	for rows.Next() {
		product := domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Brand,
			&product.Description,
			&product.Price,
			&product.Stock,
			&product.Image,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &product)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// CreateSale reserves stock and persists the sale in one transaction.
// The decrement carries its own stock guard, so a concurrent sale that
// drains a product makes this transaction roll back with
// domain.ErrInsufficientStock instead of overselling.
func (r *Repository) CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, item := range sale.Items {
			decSt := r.db.QueryBuilder.
				Update("products").
				Set("stock", sq.Expr("stock - ?", item.Quantity)).
				Set("updated_at", sale.CreatedAt).
				Where(sq.Eq{"id": item.ProductID}).
				Where(sq.Expr("stock >= ?", item.Quantity))

			sql, args, err := decSt.ToSql()
			if err != nil {
				return err
			}

			tag, err := tx.Exec(ctx, sql, args...)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domain.ErrInsufficientStock
			}
		}

		var street, city, postalCode, country, notes *string
		if sale.Address != nil {
			street = &sale.Address.Street
			city = &sale.Address.City
			postalCode = &sale.Address.PostalCode
			country = &sale.Address.Country
			notes = &sale.Address.Notes
		}

		saleSt := r.db.QueryBuilder.Insert("sales").
			Columns("id", "user_id", "user_name", "user_email", "total", "shipping_cost",
				"payment_method", "status", "delivery_method", "order_status",
				"street", "city", "postal_code", "country", "notes", "created_at").
			Values(sale.ID, sale.UserID, sale.UserName, sale.UserEmail, sale.Total, sale.ShippingCost,
				sale.PaymentMethod, sale.Status, sale.DeliveryMethod, sale.OrderStatus,
				street, city, postalCode, country, notes, sale.CreatedAt)

		sql, args, err := saleSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		for _, item := range sale.Items {
			itemSt := r.db.QueryBuilder.Insert("sale_items").
				Columns("sale_id", "product_id", "product_name", "quantity", "price").
				Values(sale.ID, item.ProductID, item.ProductName, item.Quantity, item.Price)

			sql, args, err := itemSt.ToSql()
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx, sql, args...)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return sale, nil
}

var saleColumns = []string{"id", "user_id", "user_name", "user_email", "total", "shipping_cost",
	"payment_method", "status", "delivery_method", "order_status",
	"street", "city", "postal_code", "country", "notes", "created_at"}

func (r *Repository) GetSaleByID(ctx context.Context, id string) (*domain.Sale, error) {
	statement := r.db.QueryBuilder.
		Select(saleColumns...).
		From("sales").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	sale, err := scanSale(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	err = r.loadSaleItems(ctx, sale)
	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (r *Repository) ListSales(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	statement := r.db.QueryBuilder.
		Select(saleColumns...).
		From("sales").
		OrderBy("created_at desc")

	if filter.UserID != "" {
		statement = statement.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.StartDate != nil {
		statement = statement.Where(sq.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		statement = statement.Where(sq.LtOrEq{"created_at": *filter.EndDate})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sale)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	for _, sale := range list {
		err = r.loadSaleItems(ctx, sale)
		if err != nil {
			return nil, err
		}
	}

	return list, nil
}

func (r *Repository) UpdateSaleStatus(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	statement := r.db.QueryBuilder.
		Update("sales").
		Set("status", sale.Status).
		Set("order_status", sale.OrderStatus).
		Where(sq.Eq{"id": sale.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}

	return sale, nil
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	sale := domain.Sale{}
	var street, city, postalCode, country, notes *string

	err := row.Scan(
		&sale.ID,
		&sale.UserID,
		&sale.UserName,
		&sale.UserEmail,
		&sale.Total,
		&sale.ShippingCost,
		&sale.PaymentMethod,
		&sale.Status,
		&sale.DeliveryMethod,
		&sale.OrderStatus,
		&street,
		&city,
		&postalCode,
		&country,
		&notes,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if street != nil {
		sale.Address = &domain.DeliveryAddress{
			Street:     *street,
			City:       deref(city),
			PostalCode: deref(postalCode),
			Country:    deref(country),
			Notes:      deref(notes),
		}
	}

	return &sale, nil
}

func (r *Repository) loadSaleItems(ctx context.Context, sale *domain.Sale) error {
	statement := r.db.QueryBuilder.
		Select("product_id", "product_name", "quantity", "price").
		From("sale_items").
		Where(sq.Eq{"sale_id": sale.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return err
	}

	items := make([]domain.SaleItem, 0)
	for rows.Next() {
		item := domain.SaleItem{}
		err := rows.Scan(
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
		)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	err = rows.Err()
	if err != nil {
		return err
	}

	sale.Items = items
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
