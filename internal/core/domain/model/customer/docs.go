// Package customer contains the Customer aggregate: the identity record for
// a shipment's end customer, keyed by email or phone and merged additively as
// new sightings arrive.
package customer
