package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Retail Bank Core API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Retail Bank Core API",
    "version": "1.0.0"
  },
  "security": [{"BasicAuth": []}],
  "paths": {
    "/clients": {
      "post": {
        "summary": "Register client",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["phoneNumber", "pin"],
                "properties": {
                  "phoneNumber": {"type": "string", "example": "89031112233"},
                  "pin": {"type": "string", "example": "4321"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "Client registered"}, "400": {"description": "Validation failed"}}
      }
    },
    "/clients/{id}": {
      "get": {
        "summary": "Fetch client",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Client"}, "404": {"description": "Not found"}}
      }
    },
    "/clients/{id}/accounts": {
      "get": {
        "summary": "List a client's accounts",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Accounts"}}
      }
    },
    "/clients/{id}/credits": {
      "get": {
        "summary": "List a client's credits",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Credits"}}
      }
    },
    "/clients/{id}/investments": {
      "get": {
        "summary": "List a client's investments",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Investments"}}
      }
    },
    "/clients/{id}/payments/waiting-total": {
      "get": {
        "summary": "Sum a client's waiting payments of one type",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}},
          {"name": "type", "in": "query", "required": true, "schema": {"type": "string", "enum": ["Transfer", "Purchase", "Credit", "Investment"]}}
        ],
        "responses": {"200": {"description": "Waiting total"}}
      }
    },
    "/tariffs": {
      "post": {
        "summary": "Create tariff",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["kind", "category", "rate"],
                "properties": {
                  "kind": {"type": "string", "enum": ["Account", "Credit", "Investment"]},
                  "category": {"type": "string", "example": "Personal"},
                  "rate": {"type": "string", "example": "12"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "Tariff created"}}
      },
      "get": {
        "summary": "List tariffs by kind",
        "parameters": [{"name": "kind", "in": "query", "required": true, "schema": {"type": "string", "enum": ["Account", "Credit", "Investment"]}}],
        "responses": {"200": {"description": "Tariffs"}}
      }
    },
    "/accounts": {
      "post": {
        "summary": "Open account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["clientId", "tariffId"],
                "properties": {
                  "clientId": {"type": "string", "format": "uuid"},
                  "tariffId": {"type": "string", "format": "uuid"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "Account opened"}, "422": {"description": "Tariff already in use"}}
      }
    },
    "/accounts/{id}": {
      "get": {
        "summary": "Fetch account",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Account"}, "404": {"description": "Not found"}}
      }
    },
    "/accounts/{id}/transactions": {
      "get": {
        "summary": "List an account's transactions",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Transactions"}}
      }
    },
    "/accounts/{id}/payments": {
      "get": {
        "summary": "List an account's payments",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Payments"}}
      }
    },
    "/transfers": {
      "post": {
        "summary": "Transfer funds between accounts",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["clientId", "senderAccountId", "recipientAccountId", "amount"],
                "properties": {
                  "clientId": {"type": "string", "format": "uuid"},
                  "senderAccountId": {"type": "string", "format": "uuid"},
                  "recipientAccountId": {"type": "string", "format": "uuid"},
                  "amount": {"type": "string", "example": "250.00"}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "Transfer processed"}, "422": {"description": "Insufficient balance"}}
      }
    },
    "/credits": {
      "post": {
        "summary": "Open credit",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["clientId", "tariffId", "recipientAccountId", "paymentAccountId", "amount", "termMonths"],
                "properties": {
                  "clientId": {"type": "string", "format": "uuid"},
                  "tariffId": {"type": "string", "format": "uuid"},
                  "recipientAccountId": {"type": "string", "format": "uuid"},
                  "paymentAccountId": {"type": "string", "format": "uuid"},
                  "amount": {"type": "string", "example": "10000"},
                  "termMonths": {"type": "integer", "example": 12}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "Credit opened"}, "422": {"description": "Credit limit reached or bank insolvent"}}
      }
    },
    "/credits/{id}": {
      "get": {
        "summary": "Fetch credit",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Credit"}, "404": {"description": "Not found"}}
      }
    },
    "/investments": {
      "post": {
        "summary": "Open investment",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["clientId", "tariffId", "recipientAccountId", "paymentAccountId", "amount", "termYears"],
                "properties": {
                  "clientId": {"type": "string", "format": "uuid"},
                  "tariffId": {"type": "string", "format": "uuid"},
                  "recipientAccountId": {"type": "string", "format": "uuid"},
                  "paymentAccountId": {"type": "string", "format": "uuid"},
                  "amount": {"type": "string", "example": "5000"},
                  "termYears": {"type": "integer", "example": 3}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "Investment opened"}, "422": {"description": "Tariff already in use or insufficient balance"}}
      }
    },
    "/investments/{id}": {
      "get": {
        "summary": "Fetch investment",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Investment"}, "404": {"description": "Not found"}}
      }
    },
    "/payments": {
      "post": {
        "summary": "Create payment",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["recipientAccountId", "amount", "type", "payDate"],
                "properties": {
                  "senderAccountId": {"type": "string", "format": "uuid"},
                  "recipientAccountId": {"type": "string", "format": "uuid"},
                  "amount": {"type": "string", "example": "99.90"},
                  "type": {"type": "string", "enum": ["Transfer", "Purchase", "Credit", "Investment"]},
                  "payDate": {"type": "string", "format": "date-time"},
                  "callback": {
                    "type": "object",
                    "properties": {
                      "url": {"type": "string", "example": "https://merchant.example/hooks/payment"},
                      "headers": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                  }
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "Payment created"}}
      }
    },
    "/payments/{id}": {
      "get": {
        "summary": "Fetch payment",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {"200": {"description": "Payment"}, "404": {"description": "Not found"}}
      }
    },
    "/payments/{id}/claim": {
      "post": {
        "summary": "Claim a waiting payment with a paying account",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["clientId", "senderAccountId", "pin"],
                "properties": {
                  "clientId": {"type": "string", "format": "uuid"},
                  "senderAccountId": {"type": "string", "format": "uuid"},
                  "pin": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "Payment claimed"}, "409": {"description": "Payment already settled"}}
      }
    },
    "/payments/{id}/confirm": {
      "post": {
        "summary": "Confirm a claimed payment",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["clientId", "pin"],
                "properties": {
                  "clientId": {"type": "string", "format": "uuid"},
                  "pin": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "Payment confirmed"}, "409": {"description": "Payment already settled"}, "422": {"description": "Insufficient balance"}}
      }
    },
    "/sweeps/credits": {
      "post": {"summary": "Force the credit installment sweep", "responses": {"200": {"description": "Sweep completed"}}}
    },
    "/sweeps/investments": {
      "post": {"summary": "Force the investment repayment sweep", "responses": {"200": {"description": "Sweep completed"}}}
    },
    "/sweeps/payments": {
      "post": {"summary": "Force the expired payment sweep", "responses": {"200": {"description": "Sweep completed"}}}
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {"type": "http", "scheme": "basic"}
    }
  }
}`
