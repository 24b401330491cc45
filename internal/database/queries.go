package database

// Menu item queries
const (
	ListMenuItemsSQL = `
		SELECT id, name, description, price, image, category, ingredients, available, created_at, updated_at
		FROM menu_items
		ORDER BY id ASC`

	GetMenuItemSQL = `
		SELECT id, name, description, price, image, category, ingredients, available, created_at, updated_at
		FROM menu_items WHERE id = $1`

	InsertMenuItemSQL = `
		INSERT INTO menu_items (name, description, price, image, category, ingredients, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	UpdateMenuItemSQL = `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, image = $4, category = $5,
			ingredients = $6, available = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at`

	DeleteMenuItemSQL = `DELETE FROM menu_items WHERE id = $1`
)

// Order queries
const (
	// NextOrderSequenceSQL atomically claims the next per-day sequence.
	// The upsert serializes concurrent creations on the same day, so two
	// orders can never share a number.
	NextOrderSequenceSQL = `
		INSERT INTO order_counters (day, counter) VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET counter = order_counters.counter + 1
		RETURNING counter`

	InsertOrderSQL = `
		INSERT INTO orders (number, customer_name, customer_phone, customer_email,
			customer_address, customer_city, customer_notes, order_type, delivery_fee,
			total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_item_id, name, image, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by)
		VALUES ($1, $2, $3)`

	GetOrderSQL = `
		SELECT id, number, customer_name, customer_phone, customer_email,
			customer_address, customer_city, customer_notes, order_type, delivery_fee,
			total_price, status, created_at, updated_at
		FROM orders WHERE id = $1`

	ListOrdersByEmailSQL = `
		SELECT id, number, customer_name, customer_phone, customer_email,
			customer_address, customer_city, customer_notes, order_type, delivery_fee,
			total_price, status, created_at, updated_at
		FROM orders
		WHERE customer_email = $1
		ORDER BY created_at DESC`

	ListAllOrdersSQL = `
		SELECT id, number, customer_name, customer_phone, customer_email,
			customer_address, customer_city, customer_notes, order_type, delivery_fee,
			total_price, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC`

	ListOrderItemsSQL = `
		SELECT id, menu_item_id, name, image, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, number, customer_name, customer_phone, customer_email,
			customer_address, customer_city, customer_notes, order_type, delivery_fee,
			total_price, status, created_at, updated_at`
)

// Reservation queries
const (
	InsertReservationSQL = `
		INSERT INTO reservations (date, res_time, guests, name, phone, email, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	ListReservationsSQL = `
		SELECT id, date, res_time, guests, name, phone, email, notes, status, created_at, updated_at
		FROM reservations
		ORDER BY date ASC, res_time ASC`

	UpdateReservationStatusSQL = `
		UPDATE reservations SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, date, res_time, guests, name, phone, email, notes, status, created_at, updated_at`
)

// User queries
const (
	InsertUserSQL = `
		INSERT INTO users (name, email, password_hash, role, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	GetUserByEmailSQL = `
		SELECT id, name, email, password_hash, role, phone, created_at
		FROM users WHERE email = $1`

	GetUserByIDSQL = `
		SELECT id, name, email, password_hash, role, phone, created_at
		FROM users WHERE id = $1`
)
