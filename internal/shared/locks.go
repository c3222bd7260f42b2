package shared

// InvoiceNumberLockKey guards the read-last-number then insert sequence.
const InvoiceNumberLockKey = "invoices:number:lock"
