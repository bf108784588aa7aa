package repository

import "trem-do-bem/internal/model"

// document is the whole persisted state: the catalogue plus every order.
// It is shared by the memory and file backends, which serialise access to it.
type document struct {
	Products []model.Product `json:"products"`
	Orders   []model.Order   `json:"orders"`
}

func (d *document) activeProducts() []model.Product {
	products := make([]model.Product, 0, len(d.Products))
	for _, p := range d.Products {
		if p.Active {
			products = append(products, p)
		}
	}
	return products
}

func (d *document) allProducts() []model.Product {
	return append(make([]model.Product, 0, len(d.Products)), d.Products...)
}

func (d *document) findProduct(id string) int {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *document) product(id string) *model.Product {
	idx := d.findProduct(id)
	if idx < 0 {
		return nil
	}
	p := d.Products[idx]
	return &p
}

func (d *document) upsertProduct(p model.Product) {
	if idx := d.findProduct(p.ID); idx >= 0 {
		d.Products[idx] = p
		return
	}
	d.Products = append([]model.Product{p}, d.Products...)
}

func (d *document) setProductActive(id string, active bool) *model.Product {
	idx := d.findProduct(id)
	if idx < 0 {
		return nil
	}
	d.Products[idx].Active = active
	p := d.Products[idx]
	return &p
}

func (d *document) prependOrder(o *model.Order) {
	d.Orders = append([]model.Order{*o.Clone()}, d.Orders...)
}

func (d *document) allOrders() []model.Order {
	orders := make([]model.Order, len(d.Orders))
	for i := range d.Orders {
		orders[i] = *d.Orders[i].Clone()
	}
	return orders
}

func (d *document) findOrder(id string) int {
	for i := range d.Orders {
		if d.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *document) order(id string) *model.Order {
	idx := d.findOrder(id)
	if idx < 0 {
		return nil
	}
	return d.Orders[idx].Clone()
}

func (d *document) setOrderStatus(id string, status model.OrderStatus) *model.Order {
	idx := d.findOrder(id)
	if idx < 0 {
		return nil
	}
	d.Orders[idx].Status = status
	return d.Orders[idx].Clone()
}
